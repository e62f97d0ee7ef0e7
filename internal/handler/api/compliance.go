package api

import (
	"net/http"

	reqdto "github.com/coastalprograms/swms-engine/internal/handler/dto/request"
	resdto "github.com/coastalprograms/swms-engine/internal/handler/dto/response"
	"github.com/coastalprograms/swms-engine/internal/handler/httperr"
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComplianceHandler struct {
	audit   queries.AuditQueries
	metrics queries.MetricsQueries
}

func NewComplianceHandler(audit queries.AuditQueries, metrics queries.MetricsQueries) *ComplianceHandler {
	return &ComplianceHandler{audit: audit, metrics: metrics}
}

// @Summary Audit trail export
// @Description Export the append-only notification audit trail, optionally filtered by job, contractor, and time range.
// @Tags compliance
// @Produce json
// @Security TriggerToken
// @Param job_id query string false "Job ID"
// @Param contractor_id query string false "Contractor ID"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param limit query int false "Max entries (default 200, max 1000)"
// @Success 200 {object} resdto.AuditTrailResponse
// @Failure 500 {object} map[string]string
// @Router /compliance/audit [get]
func (h *ComplianceHandler) AuditTrail(c *gin.Context) {
	entries, err := h.audit.Trail(c.Request.Context(), reqdto.ParseFilter(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read audit trail", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AuditTrailResponse{Entries: entries})
}

// @Summary Email activity export
// @Description Export per-send email activity: delivery status, retries, opens, and clicks.
// @Tags compliance
// @Produce json
// @Security TriggerToken
// @Param job_id query string false "Job ID"
// @Param contractor_id query string false "Contractor ID"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param limit query int false "Max entries (default 200, max 1000)"
// @Success 200 {object} resdto.EmailActivityResponse
// @Failure 500 {object} map[string]string
// @Router /compliance/email-activity [get]
func (h *ComplianceHandler) EmailActivity(c *gin.Context) {
	sends, err := h.audit.EmailActivity(c.Request.Context(), reqdto.ParseFilter(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read email activity", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.EmailActivityResponse{Sends: sends})
}

// @Summary Document access export
// @Description Export portal access and submission events for compliance defense.
// @Tags compliance
// @Produce json
// @Security TriggerToken
// @Param job_id query string false "Job ID"
// @Param contractor_id query string false "Contractor ID"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param limit query int false "Max entries (default 200, max 1000)"
// @Success 200 {object} resdto.AuditTrailResponse
// @Failure 500 {object} map[string]string
// @Router /compliance/document-access [get]
func (h *ComplianceHandler) DocumentAccess(c *gin.Context) {
	entries, err := h.audit.DocumentAccess(c.Request.Context(), reqdto.ParseFilter(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read document access", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AuditTrailResponse{Entries: entries})
}

// @Summary Job submission counts
// @Description Headline compliance numbers for one job: roster size, submitted, pending.
// @Tags compliance
// @Produce json
// @Security TriggerToken
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.SubmissionCountResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /compliance/jobs/{id}/submissions [get]
func (h *ComplianceHandler) JobSubmissions(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job id", nil)
		return
	}
	counts, err := h.metrics.SubmissionCount(c.Request.Context(), jobID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read submission counts", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubmissionCount(jobID, counts))
}

// @Summary Campaign engagement metrics
// @Description Open, click, and failure rates for one campaign's sends.
// @Tags compliance
// @Produce json
// @Security TriggerToken
// @Param id path string true "Campaign ID"
// @Success 200 {object} resdto.CampaignMetricsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /compliance/campaigns/{id}/metrics [get]
func (h *ComplianceHandler) CampaignMetrics(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign id", nil)
		return
	}
	m, err := h.metrics.CampaignMetrics(c.Request.Context(), campaignID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read campaign metrics", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignMetrics(m))
}
