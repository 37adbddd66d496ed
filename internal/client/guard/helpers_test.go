package guard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type memTokens struct{ token string }

func (m *memTokens) Load() (string, error) { return m.token, nil }
func (m *memTokens) Save(token string) error {
	m.token = token
	return nil
}
func (m *memTokens) Clear() error {
	m.token = ""
	return nil
}

type verifierFunc func(ctx context.Context, token string) (*api.User, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*api.User, error) {
	return f(ctx, token)
}

func waitForSubscriber(t *testing.T, src *fakeSource) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for src.subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("guard never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
