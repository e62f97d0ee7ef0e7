package response

import (
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type AuditTrailResponse struct {
	Entries []*queries.AuditEntryView `json:"entries"`
}

type EmailActivityResponse struct {
	Sends []*queries.EmailActivityItem `json:"sends"`
}

type SubmissionCountResponse struct {
	JobID     uuid.UUID `json:"jobId"`
	Total     int32     `json:"total"`
	Submitted int32     `json:"submitted"`
	Pending   int32     `json:"pending"`
}

func FromSubmissionCount(jobID uuid.UUID, c queries.SubmissionCount) *SubmissionCountResponse {
	return &SubmissionCountResponse{
		JobID:     jobID,
		Total:     c.Total,
		Submitted: c.Submitted,
		Pending:   c.Pending,
	}
}

type CampaignMetricsResponse struct {
	CampaignID  uuid.UUID `json:"campaignId"`
	TotalSends  int32     `json:"totalSends"`
	OpenRate    float64   `json:"openRate"`
	ClickRate   float64   `json:"clickRate"`
	FailureRate float64   `json:"failureRate"`
}

func FromCampaignMetrics(m queries.CampaignMetrics) *CampaignMetricsResponse {
	return &CampaignMetricsResponse{
		CampaignID:  m.CampaignID,
		TotalSends:  m.TotalSends,
		OpenRate:    m.OpenRate,
		ClickRate:   m.ClickRate,
		FailureRate: m.FailureRate,
	}
}
