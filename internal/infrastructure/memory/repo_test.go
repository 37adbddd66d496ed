package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/repository"
)

func TestUserRepository_UniqueEmailUnderConcurrency(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, taken int
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.User{Email: "a@b.com", PasswordHash: "x"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrEmailTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	if ok != 1 || taken != 19 {
		t.Errorf("created = %d, taken = %d, want 1 and 19", ok, taken)
	}
}

func TestUserRepository_Find(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Email: "a@b.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() did not assign an id")
	}

	byEmail, err := repo.FindByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("FindByEmail().ID = %q, want %q", byEmail.ID, created.ID)
	}

	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if byID.Email != "a@b.com" {
		t.Errorf("FindByID().Email = %q", byID.Email)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@b.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByEmail(unknown) = %v, want ErrUserNotFound", err)
	}
}

func TestTaskRepository_ListNewestFirstAndScoped(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first, _ := repo.Create(ctx, &domain.Task{UserID: "u1", Title: "first", Status: domain.StatusPending, CreatedAt: base})
	second, _ := repo.Create(ctx, &domain.Task{UserID: "u1", Title: "second", Status: domain.StatusCompleted, CreatedAt: base.Add(time.Minute)})
	_, _ = repo.Create(ctx, &domain.Task{UserID: "u2", Title: "foreign", Status: domain.StatusPending, CreatedAt: base})

	tasks, err := repo.List(ctx, repository.ListTasksInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("List() order = [%s %s], want newest first", tasks[0].Title, tasks[1].Title)
	}

	done, err := repo.List(ctx, repository.ListTasksInput{UserID: "u1", Status: domain.StatusCompleted})
	if err != nil {
		t.Fatalf("List(completed) error = %v", err)
	}
	if len(done) != 1 || done[0].ID != second.ID {
		t.Errorf("List(completed) = %v, want only %q", done, second.ID)
	}
}

func TestTaskRepository_MutationsAreOwnerScoped(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()

	task, _ := repo.Create(ctx, &domain.Task{UserID: "u1", Title: "mine", Status: domain.StatusPending})

	foreign := *task
	foreign.UserID = "u2"
	foreign.Title = "stolen"
	if _, err := repo.Update(ctx, &foreign); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Update(foreign) = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete(ctx, task.ID, "u2"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Delete(foreign) = %v, want ErrTaskNotFound", err)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "mine" {
		t.Errorf("title = %q, want mine", got.Title)
	}

	if err := repo.Delete(ctx, task.ID, "u1"); err != nil {
		t.Fatalf("Delete(owner) error = %v", err)
	}
	if _, err := repo.GetByID(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("GetByID(deleted) = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_CountByStatus(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	_, _ = repo.Create(ctx, &domain.Task{UserID: "u1", Status: domain.StatusPending})
	_, _ = repo.Create(ctx, &domain.Task{UserID: "u2", Status: domain.StatusPending})
	_, _ = repo.Create(ctx, &domain.Task{UserID: "u1", Status: domain.StatusInProgress})

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	want := map[domain.Status]int{domain.StatusPending: 2, domain.StatusInProgress: 1, domain.StatusCompleted: 0}
	for status, n := range want {
		if counts[status] != n {
			t.Errorf("counts[%s] = %d, want %d", status, counts[status], n)
		}
	}
}
