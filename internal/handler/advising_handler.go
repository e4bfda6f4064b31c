package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	"github.com/campusmate/reminder-api/internal/service"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
	"github.com/campusmate/reminder-api/pkg/response"
)

type advisingService interface {
	Assign(ctx context.Context, userID, semesterKey string, req dto.AssignAdvisingSlotRequest) (*service.AssignResult, error)
	Get(ctx context.Context, userID, semesterKey string) (*models.AdvisingSlot, error)
}

// AdvisingHandler assigns per-semester advising slots.
type AdvisingHandler struct {
	service advisingService
}

// NewAdvisingHandler constructs the handler.
func NewAdvisingHandler(service advisingService) *AdvisingHandler {
	return &AdvisingHandler{service: service}
}

// Assign godoc
// @Summary Assign or move an advising slot
// @Tags Advising
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param semester path string true "Semester key"
// @Param request body dto.AssignAdvisingSlotRequest true "Slot"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/advising/{semester} [put]
func (h *AdvisingHandler) Assign(c *gin.Context) {
	userID := c.Param("id")
	semester := c.Param("semester")
	if userID == "" || semester == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user id or semester"))
		return
	}

	var req dto.AssignAdvisingSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	result, err := h.service.Assign(c.Request.Context(), userID, semester, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Get godoc
// @Summary Read the assigned advising slot
// @Tags Advising
// @Produce json
// @Param id path string true "User ID"
// @Param semester path string true "Semester key"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/advising/{semester} [get]
func (h *AdvisingHandler) Get(c *gin.Context) {
	userID := c.Param("id")
	semester := c.Param("semester")
	if userID == "" || semester == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing user id or semester"))
		return
	}

	slot, err := h.service.Get(c.Request.Context(), userID, semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}
