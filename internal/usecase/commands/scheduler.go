package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/pkg/metrics"

	"github.com/google/uuid"
)

var ErrSchedulerRead = errs.New("scheduler could not read job/campaign state")

// RunResult is returned to the external timer that fired the trigger.
type RunResult struct {
	CampaignsProcessed int      `json:"campaigns_processed"`
	CampaignsExecuted  int      `json:"campaigns_executed"`
	CampaignsFailed    int      `json:"campaigns_failed"`
	Errors             []string `json:"errors"`
}

// SchedulerCommands is the campaign orchestrator. Run is idempotent and safe
// under overlapping invocations: every due campaign is executed at most once
// because the pending->active claim is a single conditional write.
type SchedulerCommands interface {
	Run(ctx context.Context) (*RunResult, error)
}

// CampaignCommands covers externally driven campaign transitions.
type CampaignCommands interface {
	Cancel(ctx context.Context, id uuid.UUID) error
}

type schedulerImpl struct {
	jobs      JobReads
	campaigns CampaignRepository
	sends     SendRepository
	templates TemplateReads
	audit     AuditWriter
	pipeline  DeliveryPipeline
	issuer    *token.Issuer
	cfg       config.Config
	clock     clock.Clock
	logger    *slog.Logger
}

func NewSchedulerCommands(
	jobs JobReads,
	campaigns CampaignRepository,
	sends SendRepository,
	templates TemplateReads,
	audit AuditWriter,
	pipeline DeliveryPipeline,
	issuer *token.Issuer,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) SchedulerCommands {
	return &schedulerImpl{
		jobs:      jobs,
		campaigns: campaigns,
		sends:     sends,
		templates: templates,
		audit:     audit,
		pipeline:  pipeline,
		issuer:    issuer,
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
	}
}

func (s *schedulerImpl) Run(ctx context.Context) (*RunResult, error) {
	now := s.clock.Now()

	// Fail-closed: if job state cannot be read, report and perform no claims.
	if err := s.materializeCampaigns(ctx); err != nil {
		return nil, errs.Mark(err, ErrSchedulerRead)
	}

	due, err := s.campaigns.DueCampaigns(ctx, now)
	if err != nil {
		return nil, errs.Mark(err, ErrSchedulerRead)
	}

	result := &RunResult{
		CampaignsProcessed: len(due),
		Errors:             []string{},
	}

	for _, dc := range due {
		claimed, claimErr := s.campaigns.Claim(ctx, dc.ID)
		if claimErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("claim %s: %v", dc.ID, claimErr))
			continue
		}
		if !claimed {
			// Lost the optimistic race to an overlapping invocation; skip
			// without reporting an error.
			continue
		}

		s.appendAudit(ctx, dc, nil, AuditCampaignClaimed, ResultSuccess, map[string]any{
			"campaign_type":  string(dc.CampaignType),
			"scheduled_date": dc.ScheduledDate,
		})

		if execErr := s.executeCampaign(ctx, dc); execErr != nil {
			result.CampaignsFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("campaign %s: %v", dc.ID, execErr))
			continue
		}
		result.CampaignsExecuted++
	}

	return result, nil
}

// materializeCampaigns creates the four pending campaign rows for every open
// job. The insert is ON CONFLICT DO NOTHING against the live (job, type)
// uniqueness, so re-running is free.
func (s *schedulerImpl) materializeCampaigns(ctx context.Context) error {
	jobs, err := s.jobs.OpenJobs(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		for _, t := range campaign.AllTypes() {
			scheduled := campaign.ScheduledDate(job.DueDate, t)
			if err := s.campaigns.EnsureScheduled(ctx, job.ID, t, scheduled); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeCampaign fans the claimed campaign out to every pending contractor
// and finalizes campaign status. Per-contractor failures are isolated; only a
// configuration fault fails the campaign as a whole.
func (s *schedulerImpl) executeCampaign(ctx context.Context, dc DueCampaign) error {
	contractors, err := s.jobs.PendingContractors(ctx, dc.JobID)
	if err != nil {
		// Claimed but unreadable roster: fail the campaign so it is visible
		// rather than silently stuck in active.
		s.failCampaign(ctx, dc, "failed to read contractor roster: "+err.Error())
		return err
	}

	var (
		wg          sync.WaitGroup
		cancelled   atomic.Bool
		configFault atomic.Bool
		sem         = make(chan struct{}, s.maxConcurrency())
	)

	for _, contractor := range contractors {
		if cancelled.Load() {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(c ContractorSnapshot) {
			defer wg.Done()
			defer func() { <-sem }()

			// Cancellation is re-checked before each contractor so an external
			// cancel stops further sends without recalling dispatched ones.
			status, statusErr := s.campaigns.Status(ctx, dc.ID)
			if statusErr == nil && status == campaign.StatusCancelled {
				cancelled.Store(true)
				return
			}
			if cancelled.Load() {
				return
			}

			if sendErr := s.sendToContractor(ctx, dc, c); sendErr != nil {
				if errors.Is(sendErr, errs.ErrConfig) {
					configFault.Store(true)
				}
				s.logger.Warn("contractor send failed",
					"campaign_id", dc.ID,
					"contractor_id", c.ID,
					"error", sendErr)
			}
		}(contractor)
	}
	wg.Wait()

	if cancelled.Load() {
		s.appendAudit(ctx, dc, nil, AuditCampaignCancelled, ResultSuccess, map[string]any{
			"reason": "cancellation observed during fan-out",
		})
		return nil
	}

	if configFault.Load() {
		s.failCampaign(ctx, dc, "delivery provider configuration fault")
		return errs.Mark(errs.New("campaign failed on configuration fault"), errs.ErrConfig)
	}

	// Partial success is not campaign-fatal: failed sends were flagged
	// individually by the pipeline. The conditional write keeps the final
	// transition idempotent under concurrent completers.
	completed, err := s.campaigns.Complete(ctx, dc.ID)
	if err != nil {
		return err
	}
	if completed {
		metrics.CampaignsCompleted.Inc()
		s.appendAudit(ctx, dc, nil, AuditCampaignCompleted, ResultSuccess, map[string]any{
			"contractors": len(contractors),
		})
	}
	return nil
}

func (s *schedulerImpl) sendToContractor(ctx context.Context, dc DueCampaign, c ContractorSnapshot) error {
	tok, err := s.issuer.Issue()
	if err != nil {
		return err
	}

	sendID, err := s.sends.IssueToken(ctx, dc.ID, c.ID, c.Email, tok)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabase)
	}

	tpl, err := s.templates.ActiveByType(ctx, dc.CampaignType)
	if err != nil {
		s.templateFault(ctx, dc, c, sendID, err)
		return err
	}

	vars := template.StandardVariables(
		c.ContactName,
		dc.JobName,
		dc.JobSiteName,
		dc.DueDate.Format("2 Jan 2006"),
		fmt.Sprintf("%s/%s/%s", s.cfg.Portal.BaseURL, s.cfg.Portal.Path, tok.Value),
		s.cfg.Contact.Phone,
		s.cfg.Contact.Email,
	)

	rendered, err := template.Render(tpl, vars)
	if err != nil {
		s.templateFault(ctx, dc, c, sendID, err)
		return err
	}

	return s.pipeline.Deliver(ctx, Dispatch{
		SendID:       sendID,
		CampaignID:   dc.ID,
		JobID:        dc.JobID,
		ContractorID: c.ID,
		Recipient:    c.Email,
		Message:      rendered,
		PortalToken:  tok.Value,
	})
}

// templateFault marks the send failed without consuming any retry budget: an
// inactive or broken template is a configuration problem, not a delivery one.
func (s *schedulerImpl) templateFault(ctx context.Context, dc DueCampaign, c ContractorSnapshot, sendID uuid.UUID, cause error) {
	if markErr := s.sends.MarkFailed(ctx, sendID, cause.Error()); markErr != nil {
		s.logger.Error("failed to mark send after template fault",
			"send_id", sendID, "error", markErr)
	}
	s.appendAudit(ctx, dc, &c.ID, AuditTemplateFault, ResultFailure, map[string]any{
		"campaign_type": string(dc.CampaignType),
		"error":         cause.Error(),
	})
}

func (s *schedulerImpl) failCampaign(ctx context.Context, dc DueCampaign, reason string) {
	failed, err := s.campaigns.Fail(ctx, dc.ID)
	if err != nil {
		s.logger.Error("failed to mark campaign as failed", "campaign_id", dc.ID, "error", err)
		return
	}
	if failed {
		metrics.CampaignsFailed.Inc()
		s.appendAudit(ctx, dc, nil, AuditCampaignFailed, ResultFailure, map[string]any{
			"reason": reason,
		})
	}
}

func (s *schedulerImpl) appendAudit(ctx context.Context, dc DueCampaign, contractorID *uuid.UUID, kind, result string, payload map[string]any) {
	_, err := s.audit.Append(ctx, AuditEntry{
		Kind:         kind,
		JobID:        &dc.JobID,
		CampaignID:   &dc.ID,
		ContractorID: contractorID,
		Payload:      payload,
		Result:       result,
	})
	if err != nil {
		s.logger.Error("failed to append audit entry", "kind", kind, "error", err)
	}
}

func (s *schedulerImpl) maxConcurrency() int {
	if s.cfg.Scheduler.MaxConcurrency > 0 {
		return s.cfg.Scheduler.MaxConcurrency
	}
	return 1
}

type campaignCommandsImpl struct {
	campaigns CampaignRepository
	audit     AuditWriter
	logger    *slog.Logger
}

func NewCampaignCommands(campaigns CampaignRepository, audit AuditWriter, logger *slog.Logger) CampaignCommands {
	return &campaignCommandsImpl{campaigns: campaigns, audit: audit, logger: logger}
}

// Cancel marks a campaign cancelled ahead of completion. In-flight fan-out
// observes the new status before each remaining contractor.
func (c *campaignCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	cancelled, err := c.campaigns.Cancel(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabase)
	}
	if !cancelled {
		return errs.ErrCampaignNotFound
	}

	_, err = c.audit.Append(ctx, AuditEntry{
		Kind:       AuditCampaignCancelled,
		CampaignID: &id,
		Payload:    map[string]any{"source": "external"},
		Result:     ResultSuccess,
	})
	if err != nil {
		c.logger.Error("failed to append audit entry", "kind", AuditCampaignCancelled, "error", err)
	}
	return nil
}
