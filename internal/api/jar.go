package api

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// KV is the slice of the storage area the jar needs: string values
// under string keys, absence reported rather than errored.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// tokenCookieKey is the storage key the jar owns. It lives in the same
// area as the session snapshot so a logout wipe removes it too.
const tokenCookieKey = "authToken"

// persistedCookie is the serialized form of the session cookie
type persistedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PersistentJar is a cookie jar that mirrors the backend's session
// cookie into the persistent storage area, so a new process run sends
// the same credential the browser would.
type PersistentJar struct {
	mu   sync.Mutex
	jar  http.CookieJar
	kv   KV
	base *url.URL
}

// NewPersistentJar builds a jar seeded from storage for the given API
// base address. A nil kv yields a purely in-memory jar.
func NewPersistentJar(baseURL string, kv KV) (*PersistentJar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	p := &PersistentJar{jar: inner, kv: kv, base: base}
	p.restore()
	return p, nil
}

// SetCookies implements http.CookieJar and mirrors the session cookie
// to storage in the same call.
func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jar.SetCookies(u, cookies)

	if p.kv == nil {
		return
	}
	for _, c := range cookies {
		if c.Name != sessionCookieName {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			_ = p.kv.Delete(tokenCookieKey)
			continue
		}
		encoded, err := json.Marshal(persistedCookie{Name: c.Name, Value: c.Value})
		if err != nil {
			continue
		}
		_ = p.kv.Set(tokenCookieKey, string(encoded))
	}
}

// Cookies implements http.CookieJar
func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jar.Cookies(u)
}

// SessionToken returns the raw session cookie value for the API host,
// empty when none is held.
func (p *PersistentJar) SessionToken() string {
	for _, c := range p.Cookies(p.base) {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	return ""
}

// restore seeds the in-memory jar from the storage snapshot
func (p *PersistentJar) restore() {
	if p.kv == nil {
		return
	}
	raw, ok := p.kv.Get(tokenCookieKey)
	if !ok {
		return
	}

	var saved persistedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil || saved.Value == "" {
		// Malformed snapshot degrades to an empty jar
		_ = p.kv.Delete(tokenCookieKey)
		return
	}

	p.jar.SetCookies(p.base, []*http.Cookie{{
		Name:  saved.Name,
		Value: saved.Value,
		Path:  "/",
	}})
}
