// Package guard gates protected client actions on the session state.
package guard

import (
	"context"
	"errors"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
	"github.com/ErlanBelekov/taskboard/internal/client/session"
)

// ErrLoginRequired is returned when a protected action runs without a session.
var ErrLoginRequired = errors.New("please log in")

type Outcome int

const (
	OutcomeLoading Outcome = iota
	OutcomeLogin
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeLogin:
		return "login"
	default:
		return "render"
	}
}

// Evaluate decides what a protected view should do for snap.
func Evaluate(snap session.Snapshot) Outcome {
	switch snap.State {
	case session.StateLoading:
		return OutcomeLoading
	case session.StateAuthenticated:
		if snap.User == nil {
			return OutcomeLogin
		}
		return OutcomeRender
	default:
		return OutcomeLogin
	}
}

// Source is satisfied by *session.Store.
type Source interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) (unsubscribe func())
}

type Guard struct {
	src         Source
	placeholder func()
}

type Option func(*Guard)

// WithPlaceholder sets what is shown once while the session is still loading.
func WithPlaceholder(fn func()) Option {
	return func(g *Guard) { g.placeholder = fn }
}

func New(src Source, opts ...Option) *Guard {
	g := &Guard{src: src, placeholder: func() {}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run evaluates the session and, once it settles, either runs protected with
// the signed-in user or returns ErrLoginRequired. While Loading it shows the
// placeholder and waits for the next transition or for ctx to end.
func (g *Guard) Run(ctx context.Context, protected func(ctx context.Context, user api.User) error) error {
	transitions := make(chan session.Snapshot, 1)
	unsubscribe := g.src.Subscribe(func(snap session.Snapshot) {
		// Keep only the newest snapshot.
		select {
		case <-transitions:
		default:
		}
		select {
		case transitions <- snap:
		default:
		}
	})
	defer unsubscribe()

	snap := g.src.Snapshot()
	shown := false
	for {
		switch Evaluate(snap) {
		case OutcomeRender:
			return protected(ctx, *snap.User)
		case OutcomeLogin:
			return ErrLoginRequired
		case OutcomeLoading:
			if !shown {
				g.placeholder()
				shown = true
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case snap = <-transitions:
			}
		}
	}
}
