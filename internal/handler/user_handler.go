package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
	"github.com/campusmate/reminder-api/pkg/response"
)

type userService interface {
	ReplaceTimetable(ctx context.Context, userID string, timetable models.WeeklyTimetable) error
}

// UserHandler exposes timetable replacement.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs the handler.
func NewUserHandler(service userService) *UserHandler {
	return &UserHandler{service: service}
}

// ReplaceTimetable godoc
// @Summary Replace the weekly timetable
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.ReplaceTimetableRequest true "Timetable"
// @Success 204
// @Failure 422 {object} response.Envelope
// @Router /users/{id}/timetable [put]
func (h *UserHandler) ReplaceTimetable(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user id"))
		return
	}

	var req dto.ReplaceTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if req.WeeklyTimetable == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing weekly_timetable"))
		return
	}

	if err := h.service.ReplaceTimetable(c.Request.Context(), userID, req.WeeklyTimetable); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
