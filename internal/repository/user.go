package repository

import (
	"context"

	"github.com/ErlanBelekov/taskboard/internal/domain"
)

// UserRepository is the credential store. Emails are stored normalized;
// Create returns domain.ErrEmailTaken on a uniqueness violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
