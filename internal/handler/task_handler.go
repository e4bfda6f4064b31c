package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
	"github.com/campusmate/reminder-api/pkg/response"
)

type taskService interface {
	Create(ctx context.Context, userID string, req dto.CreateTaskRequest) (*models.Task, int, error)
	Complete(ctx context.Context, userID, taskID string) error
}

// TaskHandler exposes task creation (which triggers reminder scheduling)
// and completion.
type TaskHandler struct {
	service taskService
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(service taskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create godoc
// @Summary Create a task and schedule its reminders
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} response.Envelope
// @Router /users/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user id"))
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	task, scheduled, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.CreateTaskResponse{
		ID:                 task.ID,
		CourseName:         task.CourseName,
		Type:               task.Type,
		DueDate:            task.DueDate,
		RemindersScheduled: scheduled,
	})
}

// Complete godoc
// @Summary Mark a task completed
// @Tags Tasks
// @Produce json
// @Param id path string true "User ID"
// @Param taskId path string true "Task ID"
// @Success 204
// @Router /users/{id}/tasks/{taskId} [delete]
func (h *TaskHandler) Complete(c *gin.Context) {
	userID := c.Param("id")
	taskID := c.Param("taskId")
	if userID == "" || taskID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user or task id"))
		return
	}

	if err := h.service.Complete(c.Request.Context(), userID, taskID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
