package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
	"github.com/campusmate/reminder-api/pkg/response"
)

type exceptionService interface {
	Create(ctx context.Context, userID string, req dto.CreateExceptionRequest) (*models.ScheduleException, error)
}

// ExceptionHandler records cancellation/makeup overrides.
type ExceptionHandler struct {
	service exceptionService
}

// NewExceptionHandler constructs the handler.
func NewExceptionHandler(service exceptionService) *ExceptionHandler {
	return &ExceptionHandler{service: service}
}

// Create godoc
// @Summary Record a schedule exception for a date
// @Tags Exceptions
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.CreateExceptionRequest true "Exception"
// @Success 201 {object} response.Envelope
// @Router /users/{id}/exceptions [post]
func (h *ExceptionHandler) Create(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user id"))
		return
	}

	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	ex, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ex)
}
