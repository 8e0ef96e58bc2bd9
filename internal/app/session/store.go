package session

import (
	"sync"

	"github.com/ganeshlonare/lms-client/internal/app/models"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto/enums"
	"github.com/ganeshlonare/lms-client/internal/pkg/logger"
	"github.com/ganeshlonare/lms-client/internal/storage"
)

// State is the client-held session truth. Invariant: IsLoggedIn is
// true iff CurrentUser is non-empty and Role is non-empty, and every
// transition writes all three fields together.
type State struct {
	IsLoggedIn  bool
	CurrentUser models.UserProfile
	Role        enums.RoleType
}

// Phase is the observable lifecycle stage of an action
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Event is the notification surfaced to the UI layer for each action
// phase, the toast analog. Data outcomes travel through return values;
// events carry only what a notification needs.
type Event struct {
	Action  string
	Phase   Phase
	Message string
}

// Bridge mirrors session state into persistent storage. The store is
// its only caller, always from inside a state transition.
type Bridge interface {
	SaveSession(storage.Snapshot) error
	LoadSession() storage.Snapshot
	Clear() error
}

// Store owns the in-memory session. It is a strict single-writer: all
// transitions run under one mutex, and the persistence mirror happens
// inside the same critical section, so no reader can observe memory
// and storage disagreeing within this process.
type Store struct {
	mu          sync.Mutex
	state       State
	bridge      Bridge
	subscribers []func(Event)

	// dispatch sequencing: a session-mutating resolution carrying a
	// sequence number older than the last applied one is discarded,
	// closing the stale-response window.
	nextSeq     uint64
	lastApplied uint64
}

// New constructs the store, seeding state from the persisted snapshot.
// This is the only point the snapshot is read.
func New(bridge Bridge) *Store {
	s := &Store{bridge: bridge}

	if bridge != nil {
		snap := bridge.LoadSession()
		if snap.IsLoggedIn {
			s.state = State{
				IsLoggedIn:  true,
				CurrentUser: snap.User,
				Role:        snap.Role,
			}
		}
	}

	return s
}

// State returns a copy of the current session state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for action phase events. Listeners
// run synchronously on the dispatching goroutine.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// notify fans an event out to subscribers
func (s *Store) notify(event Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// beginDispatch hands out the sequence number for one session-mutating
// action, taken at issue time so resolution order can be compared to
// issue order.
func (s *Store) beginDispatch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// applyLogin commits a logged-in state from a login or fetch-profile
// fulfillment. Returns false when the resolution is stale.
func (s *Store) applyLogin(seq uint64, user models.UserProfile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.lastApplied {
		logger.Debug().Uint64("seq", seq).Uint64("lastApplied", s.lastApplied).
			Msg("Discarding stale session resolution")
		return false
	}
	s.lastApplied = seq

	s.state = State{
		IsLoggedIn:  true,
		CurrentUser: user,
		Role:        user.Role,
	}

	if s.bridge != nil {
		if err := s.bridge.SaveSession(storage.Snapshot{
			IsLoggedIn: true,
			User:       user,
			Role:       user.Role,
		}); err != nil {
			// Memory stays authoritative; a failed mirror only costs
			// reload continuity.
			logger.Warn().Err(err).Msg("Failed to persist session snapshot")
		}
	}

	return true
}

// applyLogout clears the session and erases the whole persisted area.
// Returns false when the resolution is stale.
func (s *Store) applyLogout(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.lastApplied {
		logger.Debug().Uint64("seq", seq).Uint64("lastApplied", s.lastApplied).
			Msg("Discarding stale logout resolution")
		return false
	}
	s.lastApplied = seq

	s.state = State{}

	if s.bridge != nil {
		if err := s.bridge.Clear(); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear persisted session")
		}
	}

	return true
}
