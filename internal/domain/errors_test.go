package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ErlanBelekov/taskboard/internal/domain"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"sentinel", domain.ErrTaskNotFound, domain.KindNotFound},
		{"wrapped sentinel", fmt.Errorf("get task: %w", domain.ErrTaskForbidden), domain.KindAuthorization},
		{"conflict", domain.ErrEmailTaken, domain.KindConflict},
		{"plain error", errors.New("boom"), domain.KindInternal},
		{"nil", nil, domain.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := domain.NormalizeEmail("  A@B.Com \n"); got != "a@b.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "in-progress", "completed"} {
		if _, err := domain.ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", raw, err)
		}
	}
	for _, raw := range []string{"", "done", "in_progress", "PENDING"} {
		if _, err := domain.ParseStatus(raw); !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) = %v, want ErrInvalidStatus", raw, err)
		}
	}
}

func TestTaskPatch_ApplyOnlyPresentFields(t *testing.T) {
	task := &domain.Task{Title: "Buy milk", Description: "2L", Status: domain.StatusPending, Color: "#ff0000"}
	done := domain.StatusCompleted

	domain.TaskPatch{Status: &done}.Apply(task)

	if task.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", task.Status)
	}
	if task.Title != "Buy milk" || task.Description != "2L" || task.Color != "#ff0000" {
		t.Errorf("untouched fields changed: %+v", task)
	}
}
