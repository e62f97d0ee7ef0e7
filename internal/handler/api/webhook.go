package api

import (
	"net/http"

	reqdto "github.com/coastalprograms/swms-engine/internal/handler/dto/request"
	"github.com/coastalprograms/swms-engine/internal/handler/httperr"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	callbacks commands.CallbackCommands
}

func NewWebhookHandler(callbacks commands.CallbackCommands) *WebhookHandler {
	return &WebhookHandler{callbacks: callbacks}
}

// @Summary Delivery status callback
// @Description Receive delivered/bounced/opened/clicked events from the email automation provider.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.DeliveryCallbackRequest true "Delivery event"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhooks/delivery [post]
func (h *WebhookHandler) Delivery(c *gin.Context) {
	var req reqdto.DeliveryCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.callbacks.Apply(c.Request.Context(), req.ToEvent()); err != nil {
		httperr.AbortDomain(c, err, "Failed to apply delivery event")
		return
	}
	c.Status(http.StatusNoContent)
}
