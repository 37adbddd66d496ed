package repository

import (
	"context"

	"github.com/ErlanBelekov/taskboard/internal/domain"
)

type ListTasksInput struct {
	UserID string
	Status domain.Status // empty = all statuses
}

// TaskRepository persists tasks. GetByID is not owner-scoped so the usecase
// can tell "missing" from "someone else's"; mutations are owner-scoped and
// return domain.ErrTaskNotFound when no row matched.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error

	// CountByStatus feeds the task stats gauge.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}
