// Package session holds the client's authentication state machine.
//
// A Store starts Loading, settles into Authenticated or Unauthenticated after
// CheckAuth, and moves between those two on Login and Logout. Every
// transition is published to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
)

type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a consistent copy of the store's state.
type Snapshot struct {
	State State
	User  *api.User
	Token string
}

// Verifier is satisfied by *api.Client.
type Verifier interface {
	Verify(ctx context.Context, token string) (*api.User, error)
}

type Store struct {
	tokens   TokenStore
	verifier Verifier
	logger   *slog.Logger

	mu    sync.Mutex
	state State
	user  *api.User
	token string

	subs   map[int]func(Snapshot)
	nextID int
}

func NewStore(tokens TokenStore, verifier Verifier, logger *slog.Logger) *Store {
	return &Store{
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.With("component", "session"),
		state:    StateLoading,
		subs:     make(map[int]func(Snapshot)),
	}
}

// CheckAuth loads the persisted token and asks the server whether it is
// still valid. A rejected token is deleted. The returned error explains why
// the store ended Unauthenticated when a token was present.
func (s *Store) CheckAuth(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		s.set(StateUnauthenticated, nil, "")
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		s.set(StateUnauthenticated, nil, "")
		return nil
	}

	user, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "stored token rejected", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			err = errors.Join(err, fmt.Errorf("clear token: %w", clearErr))
		}
		s.set(StateUnauthenticated, nil, "")
		return err
	}

	s.set(StateAuthenticated, user, token)
	return nil
}

// Login persists token and marks the store Authenticated. Nothing changes
// when the token cannot be saved.
func (s *Store) Login(token string, user api.User) error {
	if err := s.tokens.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.set(StateAuthenticated, &user, token)
	return nil
}

// Logout forgets the session. The store is Unauthenticated even if the
// persisted token could not be removed.
func (s *Store) Logout() error {
	err := s.tokens.Clear()
	s.set(StateUnauthenticated, nil, "")
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers fn for every future transition and returns a function
// that removes it. fn runs on the goroutine that caused the transition.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(state State, user *api.User, token string) {
	s.mu.Lock()
	s.state, s.user, s.token = state, user, token
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
