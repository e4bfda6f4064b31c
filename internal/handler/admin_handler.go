package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/service"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
	"github.com/campusmate/reminder-api/pkg/response"
)

type schedulerRunner interface {
	RunForAllUsers(ctx context.Context, target service.RunTarget) (service.RunSummary, error)
	FullReset(ctx context.Context) (service.RunSummary, error)
}

// AdminHandler exposes the manual scheduler triggers behind a shared secret.
type AdminHandler struct {
	runner schedulerRunner
	secret string
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(runner schedulerRunner, secret string) *AdminHandler {
	return &AdminHandler{runner: runner, secret: secret}
}

func (h *AdminHandler) authorized(provided string) bool {
	if h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}

// Run godoc
// @Summary Run the reminder scheduler now
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.RunScheduleRequest true "Run request"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/schedule/run [post]
func (h *AdminHandler) Run(c *gin.Context) {
	var req dto.RunScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if !h.authorized(req.Secret) {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid admin secret"))
		return
	}

	target, err := service.ParseRunTarget(req.Target)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.runner.RunForAllUsers(c.Request.Context(), target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, map[string]interface{}{"target": string(target)})
}

// Reset godoc
// @Summary Purge the queue and reschedule everything
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ResetScheduleRequest true "Reset request"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/schedule/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	var req dto.ResetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if !h.authorized(req.Secret) {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid admin secret"))
		return
	}

	summary, err := h.runner.FullReset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
