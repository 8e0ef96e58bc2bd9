package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionCookieName is the cookie the backend sets on signin
const sessionCookieName = "token"

// SessionClaims is the client-side view of the backend's session JWT.
// The client never verifies the signature (it has no secret); it only
// inspects the claims it can read.
type SessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// InspectSessionToken parses a session JWT without verifying it and
// reports whether it is still within its validity window. A token the
// client cannot parse counts as invalid.
func InspectSessionToken(raw string) (*SessionClaims, bool) {
	if raw == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return claims, false
	}
	return claims, true
}

// SessionValid reports whether the jar holds a session cookie that has
// not yet expired. Used to fail authenticated calls fast instead of
// round-tripping a request the server will reject.
func (p *PersistentJar) SessionValid() bool {
	_, ok := InspectSessionToken(p.SessionToken())
	return ok
}
