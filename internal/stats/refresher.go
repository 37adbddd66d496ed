package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/metrics"
	"github.com/robfig/cron/v3"
)

// TaskCounter is satisfied by every repository.TaskRepository.
type TaskCounter interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

// Refresher recounts stored tasks on a cron schedule and publishes the
// result on the taskboard_tasks gauge.
type Refresher struct {
	tasks    TaskCounter
	logger   *slog.Logger
	schedule cron.Schedule
}

func NewRefresher(tasks TaskCounter, logger *slog.Logger, expr string) (*Refresher, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse stats schedule %q: %w", expr, err)
	}
	return &Refresher{
		tasks:    tasks,
		logger:   logger.With("component", "stats"),
		schedule: schedule,
	}, nil
}

// Start refreshes once immediately, then on every schedule tick until ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("stats refresher started")
	r.Refresh(ctx)

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("stats refresher shut down")
			return
		case <-timer.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh recounts tasks. Statuses with no tasks are published as zero.
func (r *Refresher) Refresh(ctx context.Context) {
	start := time.Now()
	counts, err := r.tasks.CountByStatus(ctx)
	metrics.StatsRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() == nil {
			metrics.StatsRefreshFailuresTotal.Inc()
			r.logger.Error("count tasks by status", "error", err)
		}
		return
	}

	for _, s := range domain.Statuses {
		metrics.TasksByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
	r.logger.Debug("task stats refreshed", "counts", counts)
}
