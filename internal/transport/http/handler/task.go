package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, owner domain.Identity, status string) ([]*domain.Task, error)
	GetTask(ctx context.Context, owner domain.Identity, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, owner domain.Identity, taskID string, input usecase.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, owner domain.Identity, taskID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Color       string `json:"color" binding:"max=32"`
}

// Absent fields stay nil and are left untouched by the update.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Color       *string `json:"color" binding:"omitempty,max=32"`
}

type taskResponse struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	Color       string        `json:"color"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(ctx.Request.Context(), usecase.CreateTaskInput{
		Owner:       owner,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
	})
	if err != nil {
		respondError(ctx, h.logger, "create task", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Task created", "task": toTaskResponse(task)})
}

// GET /api/tasks?status=<status>
func (h *TaskHandler) List(ctx *gin.Context) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	tasks, err := h.taskUsecase.ListTasks(ctx.Request.Context(), owner, ctx.Query("status"))
	if err != nil {
		respondError(ctx, h.logger, "list tasks", err)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Tasks retrieved", "tasks": resp})
}

func (h *TaskHandler) GetByID(ctx *gin.Context) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	task, err := h.taskUsecase.GetTask(ctx.Request.Context(), owner, ctx.Param("id"))
	if err != nil {
		respondError(ctx, h.logger, "get task", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task retrieved", "task": toTaskResponse(task)})
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	task, err := h.taskUsecase.UpdateTask(ctx.Request.Context(), owner, ctx.Param("id"), usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
	})
	if err != nil {
		respondError(ctx, h.logger, "update task", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task updated", "task": toTaskResponse(task)})
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	if err := h.taskUsecase.DeleteTask(ctx.Request.Context(), owner, ctx.Param("id")); err != nil {
		respondError(ctx, h.logger, "delete task", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// owner reads the identity set by middleware.Auth. A missing identity means
// the route was mounted without the middleware.
func (h *TaskHandler) owner(ctx *gin.Context) (domain.Identity, bool) {
	identity, ok := domain.IdentityFromContext(ctx.Request.Context())
	if !ok {
		respondError(ctx, h.logger, "task owner", domain.ErrTokenMissing)
	}
	return identity, ok
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
