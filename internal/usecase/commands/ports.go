package commands

import (
	"context"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/domain/token"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.

type JobSnapshot struct {
	ID           uuid.UUID
	JobName      string
	Requirements string
	JobSiteName  string
	DueDate      time.Time
}

type ContractorSnapshot struct {
	ID          uuid.UUID
	CompanyName string
	ContactName string
	Email       string
}

// DueCampaign is a pending campaign joined with the job context needed to
// render its emails.
type DueCampaign struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	CampaignType  campaign.Type
	ScheduledDate time.Time
	JobName       string
	JobSiteName   string
	DueDate       time.Time
}

// JobReads supplies the scheduler's view of compliance work. A failure here is
// fail-closed: the scheduler performs no claims it cannot verify.
type JobReads interface {
	// OpenJobs returns jobs whose SWMS requirement is not yet fully satisfied.
	OpenJobs(ctx context.Context) ([]JobSnapshot, error)
	// PendingContractors returns the job's roster minus contractors who have
	// already submitted.
	PendingContractors(ctx context.Context, jobID uuid.UUID) ([]ContractorSnapshot, error)
}

// CampaignRepository owns EmailCampaign rows and their status transitions.
// Claim and Complete are single conditional writes; the returned bool reports
// whether this caller performed the transition.
type CampaignRepository interface {
	EnsureScheduled(ctx context.Context, jobID uuid.UUID, t campaign.Type, scheduledDate time.Time) error
	DueCampaigns(ctx context.Context, now time.Time) ([]DueCampaign, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID) (bool, error)
	Fail(ctx context.Context, id uuid.UUID) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	Status(ctx context.Context, id uuid.UUID) (campaign.Status, error)
}

// SendRepository owns EmailSend rows. IssueToken creates the row for a
// (campaign, contractor) pair or, when one exists, overwrites its token in the
// same single-row write so the previous link dies the instant the new one is
// born.
type SendRepository interface {
	IssueToken(ctx context.Context, campaignID, contractorID uuid.UUID, email string, tok token.Token) (uuid.UUID, error)
	RecordAttempt(ctx context.Context, sendID uuid.UUID, retryCount int, at time.Time, errMsg string) error
	MarkSent(ctx context.Context, sendID uuid.UUID) error
	MarkFailed(ctx context.Context, sendID uuid.UUID, reason string) error
	MarkDeliveryStatus(ctx context.Context, sendID uuid.UUID, status send.DeliveryStatus) error
	StampOpened(ctx context.Context, sendID uuid.UUID, at time.Time) error
	StampClicked(ctx context.Context, sendID uuid.UUID, at time.Time) error
	FindByToken(ctx context.Context, tokenValue string) (*SendSnapshot, error)
	FindByPair(ctx context.Context, campaignID, contractorID uuid.UUID) (*SendSnapshot, error)
}

type SendSnapshot struct {
	ID             uuid.UUID
	CampaignID     uuid.UUID
	ContractorID   uuid.UUID
	RecipientEmail string
	TokenIssuedAt  time.Time
	TokenExpiresAt time.Time
	DeliveryStatus send.DeliveryStatus
	RetryCount     int
}

// TemplateReads resolves the active template for a campaign type. Missing or
// inactive templates surface as template.ErrNotFound / template.ErrInactive.
type TemplateReads interface {
	ActiveByType(ctx context.Context, t campaign.Type) (template.EmailTemplate, error)
}

// SubmissionRepository records document submissions counted by the metrics
// aggregator.
type SubmissionRepository interface {
	Record(ctx context.Context, jobID, contractorID uuid.UUID, at time.Time) error
}

// Audit kinds. One entry per meaningful action, tagged with exactly one kind.
const (
	AuditCampaignScheduled = "campaign_scheduled"
	AuditCampaignClaimed   = "campaign_claimed"
	AuditCampaignCompleted = "campaign_completed"
	AuditCampaignFailed    = "campaign_failed"
	AuditCampaignCancelled = "campaign_cancelled"
	AuditEmailAttempt      = "email_attempt"
	AuditEmailSent         = "email_sent"
	AuditEmailFailed       = "email_failed"
	AuditTemplateFault     = "template_fault"
	AuditPortalAccess      = "portal_access"
	AuditSubmission        = "submission_recorded"
	AuditDeliveryUpdate    = "delivery_status_update"
)

const (
	ResultSuccess        = "success"
	ResultFailure        = "failure"
	ResultPartialSuccess = "partial_success"
)

type AuditEntry struct {
	Kind         string
	JobID        *uuid.UUID
	CampaignID   *uuid.UUID
	ContractorID *uuid.UUID
	Payload      map[string]any
	Result       string
	// RefID points at the entry being corrected; the original is never edited.
	RefID *int64
}

// AuditWriter is append-only. Every component may append, none may mutate.
type AuditWriter interface {
	Append(ctx context.Context, entry AuditEntry) (int64, error)
}

// Provider is the outbound contract with the email automation provider
// (make.com or n8n webhook). Implementations must honor ctx deadlines.
type Provider interface {
	Send(ctx context.Context, msg ProviderMessage) error
}

type ProviderMessage struct {
	To           string    `json:"to"`
	Subject      string    `json:"subject"`
	HTML         string    `json:"html"`
	Text         string    `json:"text"`
	PortalToken  string    `json:"portal_token"`
	ContractorID uuid.UUID `json:"contractor_id"`
	CampaignID   uuid.UUID `json:"campaign_id"`
}
