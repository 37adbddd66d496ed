package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
	// hideForeign reports another user's task as missing instead of forbidden.
	hideForeign bool
}

func NewTaskUsecase(repo repository.TaskRepository, hideForeign bool) *TaskUsecase {
	return &TaskUsecase{repo: repo, hideForeign: hideForeign}
}

type CreateTaskInput struct {
	Owner       domain.Identity
	Title       string
	Description string
	Status      string
	Color       string
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if input.Status != "" {
		s, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = domain.DefaultColor
	}

	now := time.Now().UTC()
	created, err := u.repo.Create(ctx, &domain.Task{
		UserID:      input.Owner.ID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// ListTasks returns the caller's tasks, newest first.
func (u *TaskUsecase) ListTasks(ctx context.Context, owner domain.Identity, status string) ([]*domain.Task, error) {
	input := repository.ListTasksInput{UserID: owner.ID}
	if status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		input.Status = s
	}

	tasks, err := u.repo.List(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, owner domain.Identity, taskID string) (*domain.Task, error) {
	return u.owned(ctx, owner, taskID)
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Color       *string
}

// UpdateTask applies only the fields present in input.
func (u *TaskUsecase) UpdateTask(ctx context.Context, owner domain.Identity, taskID string, input UpdateTaskInput) (*domain.Task, error) {
	patch, err := input.toPatch()
	if err != nil {
		return nil, err
	}

	task, err := u.owned(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, owner domain.Identity, taskID string) error {
	if _, err := u.owned(ctx, owner, taskID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, taskID, owner.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// owned loads a task and enforces that owner holds it.
func (u *TaskUsecase) owned(ctx context.Context, owner domain.Identity, taskID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !task.OwnedBy(owner.ID) {
		if u.hideForeign {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.ErrTaskForbidden
	}
	return task, nil
}

func (in UpdateTaskInput) toPatch() (domain.TaskPatch, error) {
	var p domain.TaskPatch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := domain.ValidateTitle(title); err != nil {
			return p, err
		}
		p.Title = &title
	}
	if in.Description != nil {
		if err := domain.ValidateDescription(*in.Description); err != nil {
			return p, err
		}
		p.Description = in.Description
	}
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return p, err
		}
		p.Status = &s
	}
	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if color == "" {
			color = domain.DefaultColor
		}
		p.Color = &color
	}
	return p, nil
}
