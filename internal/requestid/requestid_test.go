package requestid

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNew_IsUUID(t *testing.T) {
	id := New()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("New() = %q, not a uuid: %v", id, err)
	}
	if New() == id {
		t.Error("two calls returned the same id")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q", got)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := FromContext(ctx); got != "abc" {
		t.Errorf("FromContext = %q, want abc", got)
	}
}

func TestFromClient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{"plain", "client-id-42", true},
		{"empty", "", false},
		{"control chars", "abc\x01def", false},
		{"space", "has space", false},
		{"newline", "a\nb", false},
		{"too long", strings.Repeat("a", 65), false},
		{"max length", strings.Repeat("a", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromClient(tt.in)
			if tt.keep {
				if got != tt.in {
					t.Errorf("FromClient(%q) = %q, want input kept", tt.in, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("FromClient(%q) = %q, want a fresh uuid", tt.in, got)
			}
		})
	}
}
