//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	pipeline commands.DeliveryPipeline
	provider *fakeProvider
	sends    *fakeSends
	audit    *fakeAudit
	clock    *clock.MockClock
}

func newPipelineFixture(t *testing.T, cfg config.DeliveryConfig, provider *fakeProvider) *pipelineFixture {
	t.Helper()
	clk := clock.NewMockClock(mustTime(t, "2025-03-07T08:00:00+08:00"))
	sends := newFakeSends()
	audit := &fakeAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &pipelineFixture{
		pipeline: commands.NewDeliveryPipeline(provider, sends, audit, cfg, clk, logger),
		provider: provider,
		sends:    sends,
		audit:    audit,
		clock:    clk,
	}
}

func (f *pipelineFixture) dispatch(t *testing.T) commands.Dispatch {
	t.Helper()
	campaignID := uuid.New()
	contractorID := uuid.New()
	sendID, err := f.sends.IssueToken(context.Background(), campaignID, contractorID, "crew@subbie.example", token.Token{
		Value:     "tok-abc",
		IssuedAt:  f.clock.Now(),
		ExpiresAt: f.clock.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	return commands.Dispatch{
		SendID:       sendID,
		CampaignID:   campaignID,
		JobID:        uuid.New(),
		ContractorID: contractorID,
		Recipient:    "crew@subbie.example",
		Message:      template.Rendered{Subject: "SWMS due", HTML: "<p>hi</p>", Text: "hi"},
		PortalToken:  "tok-abc",
	}
}

func timeoutErr() error {
	return errs.Mark(errs.New("webhook request timed out"), errs.ErrDelivery)
}

func TestDeliver_SucceedsOnThirdAttempt(t *testing.T) {
	provider := &fakeProvider{script: []error{timeoutErr(), timeoutErr(), nil}}
	f := newPipelineFixture(t, config.NewTestConfig().Delivery, provider)
	d := f.dispatch(t)

	err := f.pipeline.Deliver(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 3, provider.callCount())

	row := f.sends.byPair(d.CampaignID, d.ContractorID)
	assert.Equal(t, send.StatusSent, row.DeliveryStatus)
	assert.Equal(t, 2, row.RetryCount, "two failed calls before the success")

	attempts := f.audit.byKind(commands.AuditEmailAttempt)
	require.Len(t, attempts, 3)
	assert.Equal(t, commands.ResultFailure, attempts[0].Result)
	assert.Equal(t, commands.ResultFailure, attempts[1].Result)
	assert.Equal(t, commands.ResultSuccess, attempts[2].Result)
	assert.Equal(t, 3, attempts[2].Payload["attempt"])

	require.Len(t, f.audit.byKind(commands.AuditEmailSent), 1)
	assert.Empty(t, f.audit.byKind(commands.AuditEmailFailed))
}

func TestDeliver_StopsAfterRetryBudget(t *testing.T) {
	provider := &fakeProvider{script: []error{timeoutErr(), timeoutErr(), timeoutErr(), timeoutErr()}}
	f := newPipelineFixture(t, config.NewTestConfig().Delivery, provider)
	d := f.dispatch(t)

	err := f.pipeline.Deliver(context.Background(), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDelivery)

	// MaxRetries=2 allows the initial call plus two retries, never a fourth.
	assert.Equal(t, 3, provider.callCount())

	row := f.sends.byPair(d.CampaignID, d.ContractorID)
	assert.Equal(t, send.StatusFailed, row.DeliveryStatus)
	assert.Equal(t, 2, row.RetryCount)

	assert.Len(t, f.audit.byKind(commands.AuditEmailAttempt), 3)
	assert.Len(t, f.audit.byKind(commands.AuditEmailFailed), 1)
	assert.Empty(t, f.audit.byKind(commands.AuditEmailSent))
}

func TestDeliver_ConfigFaultIsNotRetried(t *testing.T) {
	provider := &fakeProvider{script: []error{
		errs.Mark(errs.New("webhook returned 401"), errs.ErrConfig),
	}}
	f := newPipelineFixture(t, config.NewTestConfig().Delivery, provider)
	d := f.dispatch(t)

	err := f.pipeline.Deliver(context.Background(), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConfig)
	assert.Equal(t, 1, provider.callCount())

	row := f.sends.byPair(d.CampaignID, d.ContractorID)
	assert.Equal(t, send.StatusFailed, row.DeliveryStatus)
}

func TestDeliver_MissingWebhookURL(t *testing.T) {
	provider := &fakeProvider{}
	cfg := config.NewTestConfig().Delivery
	cfg.MakeWebhook = ""
	f := newPipelineFixture(t, cfg, provider)
	d := f.dispatch(t)

	err := f.pipeline.Deliver(context.Background(), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConfig)
	assert.Zero(t, provider.callCount(), "provider is never called without an endpoint")

	row := f.sends.byPair(d.CampaignID, d.ContractorID)
	assert.Equal(t, send.StatusFailed, row.DeliveryStatus)
	assert.Len(t, f.audit.byKind(commands.AuditEmailFailed), 1)
}

func TestDeliver_RetriesWhenAttemptPersistenceFails(t *testing.T) {
	provider := &fakeProvider{}
	f := newPipelineFixture(t, config.NewTestConfig().Delivery, provider)
	f.sends.recordAttemptErrs = []error{errs.New("connection reset")}
	d := f.dispatch(t)

	err := f.pipeline.Deliver(context.Background(), d)
	require.NoError(t, err)

	// First attempt delivered but could not be recorded; the retry both
	// redelivers and lands the counter.
	assert.Equal(t, 2, provider.callCount())
	row := f.sends.byPair(d.CampaignID, d.ContractorID)
	assert.Equal(t, send.StatusSent, row.DeliveryStatus)
	assert.Equal(t, 1, row.RetryCount)
}
