package domain

import (
	"time"
	"unicode/utf8"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

const (
	DefaultColor = "#ffffff"

	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the task belongs to userID.
func (t *Task) OwnedBy(userID string) bool {
	return t.UserID == userID
}

// TaskPatch carries a partial update. Nil fields keep their prior value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Color       *string
}

// Apply copies every present field of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
}

func ValidateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	return nil
}
