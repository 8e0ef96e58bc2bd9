package api

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mapKV is an in-memory stand-in for the persistent storage area
type mapKV map[string]string

func (m mapKV) Get(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

func (m mapKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m mapKV) Delete(key string) error {
	delete(m, key)
	return nil
}

const testBase = "http://127.0.0.1:5014/api/v1"

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Bad URL %q: %v", raw, err)
	}
	return u
}

func signToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "u1",
		"email": "a@b.com",
		"role":  "USER",
		"exp":   expiresAt.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func TestPersistentJar_SurvivesRestart(t *testing.T) {
	kv := mapKV{}

	jar, err := NewPersistentJar(testBase, kv)
	if err != nil {
		t.Fatalf("NewPersistentJar failed: %v", err)
	}

	raw := signToken(t, time.Now().Add(time.Hour))
	jar.SetCookies(mustURL(t, testBase), []*http.Cookie{{Name: "token", Value: raw, Path: "/"}})

	if jar.SessionToken() != raw {
		t.Error("Jar should hold the session cookie it was given")
	}

	// A fresh jar over the same storage sends the same credential
	restarted, err := NewPersistentJar(testBase, kv)
	if err != nil {
		t.Fatalf("NewPersistentJar failed: %v", err)
	}
	if restarted.SessionToken() != raw {
		t.Error("Jar should restore the session cookie from storage")
	}
	if !restarted.SessionValid() {
		t.Error("A restored unexpired token should count as a valid session")
	}
}

func TestPersistentJar_ExpiredCookieRemoval(t *testing.T) {
	kv := mapKV{}

	jar, err := NewPersistentJar(testBase, kv)
	if err != nil {
		t.Fatalf("NewPersistentJar failed: %v", err)
	}

	jar.SetCookies(mustURL(t, testBase), []*http.Cookie{{Name: "token", Value: signToken(t, time.Now().Add(time.Hour)), Path: "/"}})
	if _, ok := kv[tokenCookieKey]; !ok {
		t.Fatal("Session cookie should be mirrored to storage")
	}

	// The signout response expires the cookie
	jar.SetCookies(mustURL(t, testBase), []*http.Cookie{{Name: "token", Value: "", MaxAge: -1, Path: "/"}})
	if _, ok := kv[tokenCookieKey]; ok {
		t.Error("An expired session cookie should be removed from storage")
	}
}

func TestPersistentJar_MalformedSnapshot(t *testing.T) {
	kv := mapKV{tokenCookieKey: "{broken"}

	jar, err := NewPersistentJar(testBase, kv)
	if err != nil {
		t.Fatalf("NewPersistentJar failed: %v", err)
	}

	if jar.SessionToken() != "" {
		t.Error("A malformed cookie snapshot should yield an empty jar")
	}
	if _, ok := kv[tokenCookieKey]; ok {
		t.Error("The malformed snapshot should be dropped from storage")
	}
}

func TestPersistentJar_IgnoresOtherCookies(t *testing.T) {
	kv := mapKV{}

	jar, err := NewPersistentJar(testBase, kv)
	if err != nil {
		t.Fatalf("NewPersistentJar failed: %v", err)
	}

	jar.SetCookies(mustURL(t, testBase), []*http.Cookie{{Name: "tracking", Value: "x", Path: "/"}})
	if len(kv) != 0 {
		t.Error("Only the session cookie belongs in storage")
	}
}

func TestInspectSessionToken(t *testing.T) {
	claims, ok := InspectSessionToken(signToken(t, time.Now().Add(time.Hour)))
	if !ok {
		t.Fatal("Unexpired token should inspect as valid")
	}
	if claims.UserID != "u1" || claims.Role != "USER" {
		t.Errorf("Claims not read: %+v", claims)
	}

	if claims, ok := InspectSessionToken(signToken(t, time.Now().Add(-time.Hour))); ok {
		t.Errorf("Expired token should inspect as invalid, claims=%+v", claims)
	}

	if _, ok := InspectSessionToken("not-a-jwt"); ok {
		t.Error("Garbage should inspect as invalid")
	}
	if _, ok := InspectSessionToken(""); ok {
		t.Error("Empty token should inspect as invalid")
	}
}
