package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/lia-xyz/to-do-list-app/internal/app/repositories"
	"github.com/lia-xyz/to-do-list-app/internal/app/services"
)

// TaskService is what the handlers need from the service layer.
type TaskService interface {
	List(ctx context.Context, completed *bool) ([]models.Task, error)
	Stats(ctx context.Context) (models.Stats, error)
	Create(ctx context.Context, title string) (models.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (models.Task, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// Completed is a pointer so a missing field is distinguishable from false.
// Strings and numbers fail to unmarshal into *bool.
type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

const healthTimeout = 2 * time.Second

var digits = regexp.MustCompile(`^[0-9]+$`)

// parseID accepts only positive base-10 integer literals that fit in int64.
func parseID(raw string) (int64, bool) {
	if !digits.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) List(c *gin.Context) {
	completed := models.ParseCompletedQuery(c.Query("completed"))

	tasks, err := h.service.List(c.Request.Context(), completed)
	if err != nil {
		internalError(c, "list tasks", err)
		return
	}

	success(c, http.StatusOK, "Tasks retrieved", tasks)
}

func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		internalError(c, "task stats", err)
		return
	}

	success(c, http.StatusOK, "Task stats retrieved", stats)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		fail(c, http.StatusBadRequest, msgTitleRequired)
		return
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		fail(c, http.StatusBadRequest, msgTitleTooLong)
		return
	}

	task, err := h.service.Create(c.Request.Context(), req.Title)
	switch {
	case errors.Is(err, services.ErrEmptyTitle):
		fail(c, http.StatusBadRequest, msgTitleRequired)
		return
	case errors.Is(err, services.ErrTitleTooLong):
		fail(c, http.StatusBadRequest, msgTitleTooLong)
		return
	}
	if err != nil {
		internalError(c, "create task", err)
		return
	}

	success(c, http.StatusCreated, "New task created", task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		fail(c, http.StatusBadRequest, msgInvalidCompleted)
		return
	}

	task, err := h.service.SetCompleted(c.Request.Context(), id, *req.Completed)
	if errors.Is(err, repositories.ErrNotFound) {
		fail(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		internalError(c, "update task", err)
		return
	}

	success(c, http.StatusOK, "Task updated", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		fail(c, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		internalError(c, "delete task", err)
		return
	}

	success(c, http.StatusOK, "Task deleted", nil)
}

func (h *TaskHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		log.Printf("health: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// internalError logs the cause and answers with a generic 500.
func internalError(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	fail(c, http.StatusInternalServerError, msgInternal)
}
