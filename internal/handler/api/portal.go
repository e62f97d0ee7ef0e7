package api

import (
	"net/http"

	resdto "github.com/coastalprograms/swms-engine/internal/handler/dto/response"
	"github.com/coastalprograms/swms-engine/internal/handler/httperr"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PortalHandler struct {
	portal commands.PortalCommands
}

func NewPortalHandler(portal commands.PortalCommands) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// @Summary Open a portal link
// @Description Resolve a tokenized portal link to its job and contractor context. Expired, superseded, and unknown tokens all return 404.
// @Tags portal
// @Produce json
// @Param token path string true "Portal token"
// @Success 200 {object} resdto.PortalResponse
// @Failure 404 {object} map[string]string
// @Router /portal/{token} [get]
func (h *PortalHandler) Access(c *gin.Context) {
	res, err := h.portal.Access(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.AbortDomain(c, err, "Link is no longer valid")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPortalResolution(res))
}

// @Summary Record a SWMS submission
// @Description Record that the contractor behind this token has submitted their SWMS documents for the job.
// @Tags portal
// @Produce json
// @Param token path string true "Portal token"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /portal/{token}/submit [post]
func (h *PortalHandler) Submit(c *gin.Context) {
	if err := h.portal.Submit(c.Request.Context(), c.Param("token")); err != nil {
		httperr.AbortDomain(c, err, "Link is no longer valid")
		return
	}
	c.Status(http.StatusNoContent)
}
