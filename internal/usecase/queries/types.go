package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Filter narrows compliance export reads. All fields are optional; Limit is
// capped by the readstore.
type Filter struct {
	JobID        *uuid.UUID
	ContractorID *uuid.UUID
	From         *time.Time
	To           *time.Time
	Limit        int32
}

type AuditEntryView struct {
	ID           int64           `json:"id"`
	Kind         string          `json:"kind"`
	JobID        *uuid.UUID      `json:"job_id,omitempty"`
	CampaignID   *uuid.UUID      `json:"campaign_id,omitempty"`
	ContractorID *uuid.UUID      `json:"contractor_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	Result       string          `json:"result"`
	RefID        *int64          `json:"ref_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type EmailActivityItem struct {
	SendID         uuid.UUID  `json:"send_id"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	CampaignType   string     `json:"campaign_type"`
	JobID          uuid.UUID  `json:"job_id"`
	ContractorID   uuid.UUID  `json:"contractor_id"`
	CompanyName    string     `json:"company_name"`
	Recipient      string     `json:"recipient"`
	DeliveryStatus string     `json:"delivery_status"`
	RetryCount     int32      `json:"retry_count"`
	LastRetryAt    *time.Time `json:"last_retry_at,omitempty"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ClickedAt      *time.Time `json:"clicked_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SubmissionCount is the dashboard headline for one job.
type SubmissionCount struct {
	Total     int32 `json:"total"`
	Submitted int32 `json:"submitted"`
	Pending   int32 `json:"pending"`
}

// SendCounts are the raw tallies CampaignMetrics is derived from.
type SendCounts struct {
	Total   int32
	Sent    int32
	Failed  int32
	Opened  int32
	Clicked int32
}

type CampaignMetrics struct {
	CampaignID  uuid.UUID `json:"campaign_id"`
	TotalSends  int32     `json:"total_sends"`
	OpenRate    float64   `json:"open_rate"`
	ClickRate   float64   `json:"click_rate"`
	FailureRate float64   `json:"failure_rate"`
}
