package storage

import (
	"encoding/json"
	"strconv"

	"github.com/ganeshlonare/lms-client/internal/app/models"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto/enums"
	"github.com/ganeshlonare/lms-client/internal/pkg/logger"
)

// Storage keys owned by the session bridge. Theme is deliberately kept
// alongside them: it shares the storage area but not the session
// lifecycle, except that Clear wipes it too.
const (
	keyIsLoggedIn = "isLoggedIn"
	keyData       = "data"
	keyRole       = "role"
	keyTheme      = "theme"
)

// Snapshot is the persisted mirror of the in-memory session
type Snapshot struct {
	IsLoggedIn bool
	User       models.UserProfile
	Role       enums.RoleType
}

// SaveSession writes all three session keys together. Callers invoke
// this only from inside a session store transition.
func (s *Store) SaveSession(snap Snapshot) error {
	encoded, err := json.Marshal(snap.User)
	if err != nil {
		return err
	}

	return s.setAll(map[string]string{
		keyIsLoggedIn: strconv.FormatBool(snap.IsLoggedIn),
		keyData:       string(encoded),
		keyRole:       string(snap.Role),
	})
}

// LoadSession reads the snapshot written by the last SaveSession. It
// is called once, at session store construction. A missing or
// malformed snapshot yields an empty session instead of an error, so
// storage damage never blocks process start.
func (s *Store) LoadSession() Snapshot {
	loggedIn, ok := s.Get(keyIsLoggedIn)
	if !ok || loggedIn != "true" {
		return Snapshot{}
	}

	raw, ok := s.Get(keyData)
	if !ok {
		return Snapshot{}
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn().Err(err).Msg("Discarding malformed session snapshot")
		return Snapshot{}
	}

	role, _ := s.Get(keyRole)
	roleType := enums.RoleType(role)

	// A snapshot that violates the session invariant is treated the
	// same as a malformed one.
	if user.IsEmpty() || !roleType.Valid() {
		return Snapshot{}
	}

	return Snapshot{IsLoggedIn: true, User: user, Role: roleType}
}

// SetTheme stores the theme preference, independent of the session
func (s *Store) SetTheme(theme string) error {
	return s.Set(keyTheme, theme)
}

// Theme returns the stored theme preference, defaulting to "dark"
func (s *Store) Theme() string {
	theme, ok := s.Get(keyTheme)
	if !ok || theme == "" {
		return "dark"
	}
	return theme
}
