package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Dispatch is one rendered message bound for one contractor.
type Dispatch struct {
	SendID       uuid.UUID
	CampaignID   uuid.UUID
	JobID        uuid.UUID
	ContractorID uuid.UUID
	Recipient    string
	Message      template.Rendered
	PortalToken  string
}

// DeliveryPipeline drives one send through the provider with bounded retry.
// The returned error is already classified: errs.ErrConfig means the campaign
// should be alerted, anything else is an isolated per-contractor failure.
type DeliveryPipeline interface {
	Deliver(ctx context.Context, d Dispatch) error
}

type pipelineImpl struct {
	provider Provider
	sends    SendRepository
	audit    AuditWriter
	limiter  *rate.Limiter
	cfg      config.DeliveryConfig
	clock    clock.Clock
	logger   *slog.Logger
}

func NewDeliveryPipeline(
	provider Provider,
	sends SendRepository,
	audit AuditWriter,
	cfg config.DeliveryConfig,
	clk clock.Clock,
	logger *slog.Logger,
) DeliveryPipeline {
	return &pipelineImpl{
		provider: provider,
		sends:    sends,
		audit:    audit,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
	}
}

func (p *pipelineImpl) Deliver(ctx context.Context, d Dispatch) error {
	if p.cfg.WebhookURL() == "" {
		err := errs.Mark(errs.New("no webhook URL configured for provider "+p.cfg.Provider), errs.ErrConfig)
		p.failSend(ctx, d, err)
		return err
	}

	msg := ProviderMessage{
		To:           d.Recipient,
		Subject:      d.Message.Subject,
		HTML:         d.Message.HTML,
		Text:         d.Message.Text,
		PortalToken:  d.PortalToken,
		ContractorID: d.ContractorID,
		CampaignID:   d.CampaignID,
	}

	// attempts counts failed calls so far; on the call that succeeds it equals
	// the row's final retry_count.
	attempts := 0

	operation := func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(errs.Mark(err, errs.ErrDelivery))
		}

		started := time.Now()
		sendErr := p.provider.Send(ctx, msg)
		latency := time.Since(started)

		// Counters are persisted after every attempt, not just the last.
		if dbErr := p.sends.RecordAttempt(ctx, d.SendID, attempts, p.clock.Now(), errText(sendErr)); dbErr != nil {
			p.appendAudit(ctx, d, AuditEmailAttempt, ResultFailure, map[string]any{
				"attempt":    attempts + 1,
				"latency_ms": latency.Milliseconds(),
				"error":      "failed to persist attempt: " + dbErr.Error(),
			})
			attempts++
			return errs.Mark(dbErr, errs.ErrDatabase)
		}

		result := ResultSuccess
		payload := map[string]any{
			"attempt":    attempts + 1,
			"latency_ms": latency.Milliseconds(),
		}
		if sendErr != nil {
			result = ResultFailure
			payload["error"] = sendErr.Error()
		}
		p.appendAudit(ctx, d, AuditEmailAttempt, result, payload)

		if sendErr != nil {
			attempts++
			if errors.Is(sendErr, errs.ErrConfig) {
				// Configuration faults never consume the retry budget.
				return backoff.Permanent(sendErr)
			}
			return sendErr
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.BackoffBase
	b.Multiplier = p.cfg.BackoffGrowth
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.cfg.MaxRetries)), ctx))
	if err != nil {
		p.failSend(ctx, d, err)
		return err
	}

	if markErr := p.sends.MarkSent(ctx, d.SendID); markErr != nil {
		p.logger.Error("send dispatched but status update failed",
			"send_id", d.SendID, "error", markErr)
	}
	p.appendAudit(ctx, d, AuditEmailSent, ResultSuccess, map[string]any{
		"attempts": attempts + 1,
	})
	metrics.EmailsSent.Inc()
	return nil
}

func (p *pipelineImpl) failSend(ctx context.Context, d Dispatch, cause error) {
	if markErr := p.sends.MarkFailed(ctx, d.SendID, cause.Error()); markErr != nil {
		p.logger.Error("failed to mark send as failed",
			"send_id", d.SendID, "error", markErr)
	}
	p.appendAudit(ctx, d, AuditEmailFailed, ResultFailure, map[string]any{
		"error": cause.Error(),
	})
	metrics.EmailFailures.Inc()
}

func (p *pipelineImpl) appendAudit(ctx context.Context, d Dispatch, kind, result string, payload map[string]any) {
	_, err := p.audit.Append(ctx, AuditEntry{
		Kind:         kind,
		JobID:        &d.JobID,
		CampaignID:   &d.CampaignID,
		ContractorID: &d.ContractorID,
		Payload:      payload,
		Result:       result,
	})
	if err != nil {
		// The audit trail must never block delivery; failures are logged and
		// the send proceeds.
		p.logger.Error("failed to append audit entry", "kind", kind, "error", err)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
