package api

import (
	"net/http"

	resdto "github.com/coastalprograms/swms-engine/internal/handler/dto/response"
	"github.com/coastalprograms/swms-engine/internal/handler/httperr"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SchedulerHandler struct {
	scheduler commands.SchedulerCommands
	campaigns commands.CampaignCommands
}

func NewSchedulerHandler(scheduler commands.SchedulerCommands, campaigns commands.CampaignCommands) *SchedulerHandler {
	return &SchedulerHandler{scheduler: scheduler, campaigns: campaigns}
}

// @Summary Run the campaign scheduler
// @Description Materialize and execute all due compliance campaigns. Safe to call from overlapping timers.
// @Tags scheduler
// @Produce json
// @Security TriggerToken
// @Success 200 {object} resdto.SchedulerRunResponse
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /scheduler/run [post]
func (h *SchedulerHandler) Run(c *gin.Context) {
	result, err := h.scheduler.Run(c.Request.Context())
	if err != nil {
		// Fail-closed: nothing was claimed, the caller should retry later.
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Scheduler run failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRunResult(result))
}

// @Summary Cancel a campaign
// @Description Cancel a pending or active campaign. Emails already dispatched are not recalled.
// @Tags scheduler
// @Produce json
// @Security TriggerToken
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /campaigns/{id}/cancel [post]
func (h *SchedulerHandler) CancelCampaign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign id", nil)
		return
	}
	if err := h.campaigns.Cancel(c.Request.Context(), id); err != nil {
		httperr.AbortDomain(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}
