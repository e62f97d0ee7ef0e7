package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/pkg/metrics"

	"github.com/google/uuid"
)

// PortalResolution is everything the portal page needs once a token checks
// out: the campaign, the contractor, the job, and its site.
type PortalResolution struct {
	SendID         uuid.UUID
	CampaignID     uuid.UUID
	CampaignType   string
	ContractorID   uuid.UUID
	ContractorName string
	CompanyName    string
	JobID          uuid.UUID
	JobName        string
	Requirements   string
	JobSiteName    string
	JobSiteAddress string
	DueDate        time.Time
	TokenExpiresAt time.Time
	Submitted      bool
}

// PortalReads resolves a raw token value to its full context. A superseded
// token no longer exists on any row, so it resolves exactly like an unknown
// one; both report infra.KindNotFound, any other failure is an
// infrastructure fault.
type PortalReads interface {
	ResolveToken(ctx context.Context, tokenValue string) (*PortalResolution, error)
}

// PortalCommands handles contractor-facing portal actions. Both paths append
// to the audit trail; rejections are recorded too, since compliance defense
// cares who tried to use a dead link.
type PortalCommands interface {
	Access(ctx context.Context, tokenValue string) (*PortalResolution, error)
	Submit(ctx context.Context, tokenValue string) error
}

type portalCommandsImpl struct {
	reads       PortalReads
	sends       SendRepository
	submissions SubmissionRepository
	audit       AuditWriter
	clock       clock.Clock
	logger      *slog.Logger
}

func NewPortalCommands(
	reads PortalReads,
	sends SendRepository,
	submissions SubmissionRepository,
	audit AuditWriter,
	clk clock.Clock,
	logger *slog.Logger,
) PortalCommands {
	return &portalCommandsImpl{
		reads:       reads,
		sends:       sends,
		submissions: submissions,
		audit:       audit,
		clock:       clk,
		logger:      logger,
	}
}

func (p *portalCommandsImpl) Access(ctx context.Context, tokenValue string) (*PortalResolution, error) {
	res, err := p.resolve(ctx, tokenValue)
	if err != nil {
		return nil, err
	}

	// Best-effort open stamp; the page renders either way.
	if stampErr := p.sends.StampOpened(ctx, res.SendID, p.clock.Now()); stampErr != nil {
		p.logger.Warn("failed to stamp portal open", "send_id", res.SendID, "error", stampErr)
	}

	p.auditAccess(ctx, res, ResultSuccess, map[string]any{"action": "view"})
	metrics.PortalAccess.WithLabelValues("ok").Inc()
	return res, nil
}

func (p *portalCommandsImpl) Submit(ctx context.Context, tokenValue string) error {
	res, err := p.resolve(ctx, tokenValue)
	if err != nil {
		return err
	}

	if err := p.submissions.Record(ctx, res.JobID, res.ContractorID, p.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabase)
	}

	p.auditSubmission(ctx, res)
	return nil
}

// resolve validates a token and audits every rejection. Expiry wins over all
// document state: a token past token_expires_at is dead even if a submission
// already exists.
func (p *portalCommandsImpl) resolve(ctx context.Context, tokenValue string) (*PortalResolution, error) {
	res, err := p.reads.ResolveToken(ctx, tokenValue)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrDatabase)
		}
		p.auditRejection(ctx, "unknown_or_superseded")
		metrics.PortalAccess.WithLabelValues("invalid").Inc()
		return nil, errs.Mark(err, errs.ErrTokenInvalid)
	}

	if p.clock.Now().After(res.TokenExpiresAt) {
		p.auditAccess(ctx, res, ResultFailure, map[string]any{"reason": "expired"})
		metrics.PortalAccess.WithLabelValues("expired").Inc()
		return nil, errs.ErrTokenInvalid
	}

	return res, nil
}

func (p *portalCommandsImpl) auditAccess(ctx context.Context, res *PortalResolution, result string, payload map[string]any) {
	_, err := p.audit.Append(ctx, AuditEntry{
		Kind:         AuditPortalAccess,
		JobID:        &res.JobID,
		CampaignID:   &res.CampaignID,
		ContractorID: &res.ContractorID,
		Payload:      payload,
		Result:       result,
	})
	if err != nil {
		p.logger.Error("failed to append audit entry", "kind", AuditPortalAccess, "error", err)
	}
}

func (p *portalCommandsImpl) auditRejection(ctx context.Context, reason string) {
	_, err := p.audit.Append(ctx, AuditEntry{
		Kind:    AuditPortalAccess,
		Payload: map[string]any{"reason": reason},
		Result:  ResultFailure,
	})
	if err != nil {
		p.logger.Error("failed to append audit entry", "kind", AuditPortalAccess, "error", err)
	}
}

func (p *portalCommandsImpl) auditSubmission(ctx context.Context, res *PortalResolution) {
	_, err := p.audit.Append(ctx, AuditEntry{
		Kind:         AuditSubmission,
		JobID:        &res.JobID,
		CampaignID:   &res.CampaignID,
		ContractorID: &res.ContractorID,
		Payload:      map[string]any{"campaign_type": res.CampaignType},
		Result:       ResultSuccess,
	})
	if err != nil {
		p.logger.Error("failed to append audit entry", "kind", AuditSubmission, "error", err)
	}
}
