package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/infrastructure/memory"
	"github.com/ErlanBelekov/taskboard/internal/repository"
	"github.com/ErlanBelekov/taskboard/internal/usecase"
)

var (
	ownerA = domain.Identity{ID: "user-a", Email: "a@example.com"}
	ownerB = domain.Identity{ID: "user-b", Email: "b@example.com"}
)

func strPtr(s string) *string { return &s }

type fakeTaskRepo struct {
	repository.TaskRepository
	getByID func(ctx context.Context, id string) (*domain.Task, error)
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.getByID(ctx, id)
}

func TestCreateTask_Defaults(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), false)

	task, err := uc.CreateTask(context.Background(), usecase.CreateTaskInput{Owner: ownerA, Title: "  Buy milk  "})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.Title != "Buy milk" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if task.Color != domain.DefaultColor {
		t.Errorf("color = %q, want %q", task.Color, domain.DefaultColor)
	}
	if task.UserID != ownerA.ID {
		t.Errorf("owner = %q, want %q", task.UserID, ownerA.ID)
	}
}

func TestCreateTask_Rejections(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), false)
	ctx := context.Background()

	if _, err := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "   "}); !errors.Is(err, domain.ErrTitleRequired) {
		t.Errorf("blank title: %v, want ErrTitleRequired", err)
	}
	if _, err := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "x", Status: "done"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status: %v, want ErrInvalidStatus", err)
	}
}

func TestListTasks_OnlyOwnNewestFirst(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), false)
	ctx := context.Background()

	first, _ := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "first"})
	second, _ := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "second"})
	_, _ = uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerB, Title: "foreign"})

	tasks, err := uc.ListTasks(ctx, ownerA, "")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("order = [%s %s], want [%s %s]", tasks[0].Title, tasks[1].Title, "second", "first")
	}

	if _, err := uc.ListTasks(ctx, ownerA, "bogus"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("ListTasks(bogus) = %v, want ErrInvalidStatus", err)
	}
}

func TestOwnership_OwnerSucceedsOtherAlwaysFails(t *testing.T) {
	for _, hide := range []bool{false, true} {
		uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), hide)
		ctx := context.Background()

		task, err := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "secret"})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}

		wantForeign := domain.ErrTaskForbidden
		if hide {
			wantForeign = domain.ErrTaskNotFound
		}

		if _, err := uc.GetTask(ctx, ownerB, task.ID); !errors.Is(err, wantForeign) {
			t.Errorf("hide=%v: B get = %v, want %v", hide, err, wantForeign)
		}
		if _, err := uc.UpdateTask(ctx, ownerB, task.ID, usecase.UpdateTaskInput{Title: strPtr("pwned")}); !errors.Is(err, wantForeign) {
			t.Errorf("hide=%v: B update = %v, want %v", hide, err, wantForeign)
		}
		if err := uc.DeleteTask(ctx, ownerB, task.ID); !errors.Is(err, wantForeign) {
			t.Errorf("hide=%v: B delete = %v, want %v", hide, err, wantForeign)
		}

		got, err := uc.GetTask(ctx, ownerA, task.ID)
		if err != nil {
			t.Fatalf("A get error = %v", err)
		}
		if got.Title != "secret" {
			t.Errorf("title changed by B: %q", got.Title)
		}
		if _, err := uc.UpdateTask(ctx, ownerA, task.ID, usecase.UpdateTaskInput{Title: strPtr("renamed")}); err != nil {
			t.Errorf("A update error = %v", err)
		}
		if err := uc.DeleteTask(ctx, ownerA, task.ID); err != nil {
			t.Errorf("A delete error = %v", err)
		}
		if _, err := uc.GetTask(ctx, ownerA, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("after delete: %v, want ErrTaskNotFound", err)
		}
	}
}

func TestUpdateTask_StatusOnlyKeepsOtherFields(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), false)
	ctx := context.Background()

	task, _ := uc.CreateTask(ctx, usecase.CreateTaskInput{
		Owner: ownerA, Title: "Buy milk", Description: "2 litres", Color: "#ff0000",
	})

	if _, err := uc.UpdateTask(ctx, ownerA, task.ID, usecase.UpdateTaskInput{Status: strPtr("in-progress")}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	got, err := uc.GetTask(ctx, ownerA, task.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Status != domain.StatusInProgress {
		t.Errorf("status = %q, want in-progress", got.Status)
	}
	if got.Title != "Buy milk" || got.Description != "2 litres" || got.Color != "#ff0000" {
		t.Errorf("other fields changed: %+v", got)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateTask_ClearsDescriptionWhenPresentButEmpty(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewTaskRepository(), false)
	ctx := context.Background()
	task, _ := uc.CreateTask(ctx, usecase.CreateTaskInput{Owner: ownerA, Title: "x", Description: "old"})

	got, err := uc.UpdateTask(ctx, ownerA, task.ID, usecase.UpdateTaskInput{Description: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if got.Description != "" {
		t.Errorf("description = %q, want empty", got.Description)
	}
}

func TestUpdateTask_ValidatesBeforeLoading(t *testing.T) {
	repo := &fakeTaskRepo{getByID: func(context.Context, string) (*domain.Task, error) {
		t.Fatal("repository must not be reached")
		return nil, nil
	}}
	uc := usecase.NewTaskUsecase(repo, false)

	_, err := uc.UpdateTask(context.Background(), ownerA, "t1", usecase.UpdateTaskInput{Title: strPtr(" ")})
	if !errors.Is(err, domain.ErrTitleRequired) {
		t.Errorf("blank title: %v, want ErrTitleRequired", err)
	}
	_, err = uc.UpdateTask(context.Background(), ownerA, "t1", usecase.UpdateTaskInput{Status: strPtr("archived")})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status: %v, want ErrInvalidStatus", err)
	}
}

func TestGetTask_RepoError_IsInternal(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeTaskRepo{getByID: func(context.Context, string) (*domain.Task, error) { return nil, repoErr }}

	_, err := usecase.NewTaskUsecase(repo, false).GetTask(context.Background(), ownerA, "t1")
	if !errors.Is(err, repoErr) {
		t.Errorf("want wrapped repoErr, got %v", err)
	}
	if domain.KindOf(err) != domain.KindInternal {
		t.Errorf("kind = %q, want internal", domain.KindOf(err))
	}
}
