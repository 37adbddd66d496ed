// seed inserts a demo user and a handful of tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/auth"
	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/taskboard/internal/repository"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seedpass1"
)

type seedTask struct {
	title       string
	description string
	status      domain.Status
	color       string
}

var tasks = []seedTask{
	{"Buy groceries", "Milk, eggs, bread", domain.StatusPending, "#ffe08a"},
	{"Write weekly report", "", domain.StatusInProgress, "#9ad0ff"},
	{"Renew passport", "Book an appointment first", domain.StatusPending, domain.DefaultColor},
	{"Fix bike brakes", "", domain.StatusCompleted, "#b8f2c4"},
	{"Call the dentist", "", domain.StatusPending, domain.DefaultColor},
	{"Plan trip", "Compare train and flight prices", domain.StatusInProgress, "#f5b3d6"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hasher, err := auth.NewPasswordHasher(auth.DefaultBcryptCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	user, created, err := ensureUser(ctx, userRepo, hasher)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	// Skip tasks on re-runs so the list does not grow every time.
	existing, err := taskRepo.List(ctx, repository.ListTasksInput{UserID: user.ID})
	if err != nil {
		log.Fatalf("list tasks: %v", err)
	}

	inserted := 0
	if len(existing) == 0 {
		now := time.Now().UTC()
		for i, st := range tasks {
			// Spread creation times so the newest-first order is visible.
			at := now.Add(time.Duration(i-len(tasks)) * time.Minute)
			_, err := taskRepo.Create(ctx, &domain.Task{
				UserID:      user.ID,
				Title:       st.title,
				Description: st.description,
				Status:      st.status,
				Color:       st.color,
				CreatedAt:   at,
				UpdatedAt:   at,
			})
			if err != nil {
				log.Fatalf("insert task %q: %v", st.title, err)
			}
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s (created: %t)\n", seedEmail, created)
	fmt.Printf("  Password:      %s\n", seedPassword)
	fmt.Printf("  User ID:       %s\n", user.ID)
	fmt.Printf("  Tasks created: %d  (already had %d)\n", inserted, len(existing))
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  With the CLI:")
	fmt.Println()
	fmt.Printf("    go run ./cmd/cli login --email %s --password %s\n", seedEmail, seedPassword)
	fmt.Println("    go run ./cmd/cli tasks list")
	fmt.Println()
	fmt.Println("  With curl:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/tasks -H \"Authorization: Bearer $JWT\"")
}

// ensureUser creates the seed user, or returns it when it already exists.
func ensureUser(ctx context.Context, users repository.UserRepository, hasher *auth.PasswordHasher) (*domain.User, bool, error) {
	if u, err := users.FindByEmail(ctx, seedEmail); err == nil {
		return u, false, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC()
	u, err := users.Create(ctx, &domain.User{
		Email:        seedEmail,
		Name:         "Seed User",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
