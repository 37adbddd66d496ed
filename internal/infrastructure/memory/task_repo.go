package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/repository"
	"github.com/google/uuid"
)

type taskRow struct {
	task domain.Task
	seq  uint64
}

type TaskRepository struct {
	mu    sync.RWMutex
	rows  map[string]*taskRow
	nextS uint64
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{rows: make(map[string]*taskRow)}
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *task
	t.ID = uuid.NewString()
	r.nextS++
	r.rows[t.ID] = &taskRow{task: t, seq: r.nextS}

	return &t, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t := row.task
	return &t, nil
}

// List orders by created_at DESC; insertion order breaks ties.
func (r *TaskRepository) List(_ context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	r.mu.RLock()
	matched := make([]*taskRow, 0)
	for _, row := range r.rows {
		if row.task.UserID != input.UserID {
			continue
		}
		if input.Status != "" && row.task.Status != input.Status {
			continue
		}
		matched = append(matched, row)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]*domain.Task, len(matched))
	for i, row := range matched {
		t := row.task
		tasks[i] = &t
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[task.ID]
	if !ok || row.task.UserID != task.UserID {
		return nil, domain.ErrTaskNotFound
	}
	row.task.Title = task.Title
	row.task.Description = task.Description
	row.task.Status = task.Status
	row.task.Color = task.Color
	row.task.UpdatedAt = task.UpdatedAt

	t := row.task
	return &t, nil
}

func (r *TaskRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok || row.task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *TaskRepository) CountByStatus(_ context.Context) (map[domain.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.Status]int)
	for _, row := range r.rows {
		counts[row.task.Status]++
	}
	return counts, nil
}
