package guard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
	"github.com/ErlanBelekov/taskboard/internal/client/session"
)

func TestEvaluate(t *testing.T) {
	user := &api.User{ID: "u1"}
	tests := []struct {
		name string
		snap session.Snapshot
		want Outcome
	}{
		{"loading", session.Snapshot{State: session.StateLoading}, OutcomeLoading},
		{"unauthenticated", session.Snapshot{State: session.StateUnauthenticated}, OutcomeLogin},
		{"authenticated", session.Snapshot{State: session.StateAuthenticated, User: user, Token: "t"}, OutcomeRender},
		{"authenticated without user", session.Snapshot{State: session.StateAuthenticated}, OutcomeLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.snap); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeSource lets tests drive transitions by hand.
type fakeSource struct {
	mu   sync.Mutex
	snap session.Snapshot
	subs []func(session.Snapshot)
}

func (f *fakeSource) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSource) Subscribe(fn func(session.Snapshot)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakeSource) publish(snap session.Snapshot) {
	f.mu.Lock()
	f.snap = snap
	subs := append([]func(session.Snapshot){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (f *fakeSource) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func TestRun_Authenticated(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateAuthenticated, User: &api.User{ID: "u1"}}}

	var got api.User
	err := New(src).Run(context.Background(), func(_ context.Context, user api.User) error {
		got = user
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("protected action got user %q, want u1", got.ID)
	}
}

func TestRun_Unauthenticated(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateUnauthenticated}}

	err := New(src).Run(context.Background(), func(context.Context, api.User) error {
		t.Fatal("protected action must not run")
		return nil
	})
	if !errors.Is(err, ErrLoginRequired) {
		t.Errorf("Run() = %v, want ErrLoginRequired", err)
	}
}

func TestRun_ProtectedErrorIsReturned(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateAuthenticated, User: &api.User{ID: "u1"}}}
	boom := errors.New("boom")

	err := New(src).Run(context.Background(), func(context.Context, api.User) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want %v", err, boom)
	}
}

func TestRun_WaitsWhileLoading(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateLoading}}
	placeholders := 0
	g := New(src, WithPlaceholder(func() { placeholders++ }))

	done := make(chan error, 1)
	go func() {
		done <- g.Run(context.Background(), func(context.Context, api.User) error { return nil })
	}()

	waitForSubscriber(t, src)
	src.publish(session.Snapshot{State: session.StateAuthenticated, User: &api.User{ID: "u1"}})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("guard did not re-evaluate after transition")
	}
	if placeholders != 1 {
		t.Errorf("placeholder shown %d times, want 1", placeholders)
	}
}

func TestRun_LoadingThenLoggedOut(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateLoading}}

	done := make(chan error, 1)
	go func() {
		done <- New(src).Run(context.Background(), func(context.Context, api.User) error { return nil })
	}()

	waitForSubscriber(t, src)
	src.publish(session.Snapshot{State: session.StateUnauthenticated})

	select {
	case err := <-done:
		if !errors.Is(err, ErrLoginRequired) {
			t.Errorf("Run() = %v, want ErrLoginRequired", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("guard did not re-evaluate after transition")
	}
}

func TestRun_LoadingCanceled(t *testing.T) {
	src := &fakeSource{snap: session.Snapshot{State: session.StateLoading}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := New(src).Run(ctx, func(context.Context, api.User) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want DeadlineExceeded", err)
	}
}

func TestRun_WithRealStore(t *testing.T) {
	store := session.NewStore(&memTokens{token: "tok"}, verifierFunc(func(context.Context, string) (*api.User, error) {
		return &api.User{ID: "u1", Email: "a@b.com"}, nil
	}), discard)
	g := New(store)

	done := make(chan error, 1)
	go func() {
		done <- g.Run(context.Background(), func(_ context.Context, user api.User) error {
			if user.Email != "a@b.com" {
				return errors.New("wrong user")
			}
			return nil
		})
	}()

	// The guard may see Loading or the settled state; either way it must finish.
	if err := store.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("guard never settled")
	}
}
