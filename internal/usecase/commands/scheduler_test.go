//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulerFixture struct {
	scheduler commands.SchedulerCommands
	jobs      *fakeJobs
	campaigns *fakeCampaigns
	sends     *fakeSends
	templates *fakeTemplates
	audit     *fakeAudit
	provider  *fakeProvider
	clock     *clock.MockClock
	cfg       config.Config
}

func newSchedulerFixture(t *testing.T, mutate func(*config.Config)) *schedulerFixture {
	t.Helper()
	cfg := config.NewTestConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	clk := clock.NewMockClock(mustTime(t, "2025-03-07T08:00:00+08:00"))
	jobs := &fakeJobs{contractors: map[uuid.UUID][]commands.ContractorSnapshot{}}
	campaigns := newFakeCampaigns()
	sends := newFakeSends()
	templates := newFakeTemplates()
	audit := &fakeAudit{}
	provider := &fakeProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pipeline := commands.NewDeliveryPipeline(provider, sends, audit, cfg.Delivery, clk, logger)
	issuer := token.NewIssuer(cfg.Portal.TokenTTL, clk)

	return &schedulerFixture{
		scheduler: commands.NewSchedulerCommands(jobs, campaigns, sends, templates, audit, pipeline, issuer, cfg, clk, logger),
		jobs:      jobs,
		campaigns: campaigns,
		sends:     sends,
		templates: templates,
		audit:     audit,
		provider:  provider,
		clock:     clk,
		cfg:       cfg,
	}
}

// seedJob registers an open job with the given roster and returns its snapshot.
func (f *schedulerFixture) seedJob(t *testing.T, due time.Time, roster int) (commands.JobSnapshot, []commands.ContractorSnapshot) {
	t.Helper()
	job := commands.JobSnapshot{
		ID:          uuid.New(),
		JobName:     "Rivervale Duplex",
		JobSiteName: "14 Acton Ave",
		DueDate:     due,
	}
	var contractors []commands.ContractorSnapshot
	for i := 0; i < roster; i++ {
		contractors = append(contractors, commands.ContractorSnapshot{
			ID:          uuid.New(),
			CompanyName: "Subbie Pty Ltd",
			ContactName: "Jo Site",
			Email:       "crew@subbie.example",
		})
	}
	f.jobs.jobs = append(f.jobs.jobs, job)
	f.jobs.contractors[job.ID] = contractors
	return job, contractors
}

// seedCampaign inserts a campaign row directly, bypassing materialization.
func (f *schedulerFixture) seedCampaign(job commands.JobSnapshot, t campaign.Type, scheduled time.Time, status campaign.Status) commands.DueCampaign {
	dc := commands.DueCampaign{
		ID:            uuid.New(),
		JobID:         job.ID,
		CampaignType:  t,
		ScheduledDate: scheduled,
		JobName:       job.JobName,
		JobSiteName:   job.JobSiteName,
		DueDate:       job.DueDate,
	}
	f.campaigns.seed(dc, status)
	return dc
}

func TestRun_ExecutesDueCampaign(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	due := mustTime(t, "2025-03-21T00:00:00+08:00")
	job, contractors := f.seedJob(t, due, 2)

	// Only the 14-day reminder is still pending at 7 March.
	dc := f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)
	f.seedCampaign(job, campaign.TypeFinal21, mustTime(t, "2025-02-28T00:00:00+08:00"), campaign.StatusCompleted)
	f.seedCampaign(job, campaign.TypeReminder7, mustTime(t, "2025-03-14T00:00:00+08:00"), campaign.StatusPending)
	f.seedCampaign(job, campaign.TypeInitial, mustTime(t, "2025-03-21T00:00:00+08:00"), campaign.StatusPending)

	result, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)

	want := &commands.RunResult{CampaignsProcessed: 1, CampaignsExecuted: 1, Errors: []string{}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("run result mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, campaign.StatusCompleted, f.campaigns.statusOf(dc.ID))
	assert.Equal(t, len(contractors), f.provider.callCount())

	for _, c := range contractors {
		row := f.sends.byPair(dc.ID, c.ID)
		require.NotNil(t, row)
		assert.Equal(t, send.StatusSent, row.DeliveryStatus)
		assert.NotEmpty(t, row.tokenValue)
	}

	assert.Len(t, f.audit.byKind(commands.AuditCampaignClaimed), 1)
	assert.Len(t, f.audit.byKind(commands.AuditEmailSent), 2)
	assert.Len(t, f.audit.byKind(commands.AuditCampaignCompleted), 1)
}

func TestRun_MaterializesAllCampaignTypes(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	due := mustTime(t, "2025-03-21T00:00:00+08:00")
	f.seedJob(t, due, 1)

	_, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)

	f.campaigns.mu.Lock()
	byType := map[campaign.Type]time.Time{}
	for _, row := range f.campaigns.rows {
		byType[row.CampaignType] = row.ScheduledDate
	}
	f.campaigns.mu.Unlock()

	require.Len(t, byType, len(campaign.AllTypes()))
	assert.Equal(t, mustTime(t, "2025-03-21T00:00:00+08:00"), byType[campaign.TypeInitial])
	assert.Equal(t, mustTime(t, "2025-03-14T00:00:00+08:00"), byType[campaign.TypeReminder7])
	assert.Equal(t, mustTime(t, "2025-03-07T00:00:00+08:00"), byType[campaign.TypeReminder14])
	assert.Equal(t, mustTime(t, "2025-02-28T00:00:00+08:00"), byType[campaign.TypeFinal21])
}

func TestRun_ConcurrentTriggersClaimOnce(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	job, contractors := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 3)
	f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)

	const triggers = 8
	results := make([]*commands.RunResult, triggers)
	runErrs := make([]error, triggers)
	var wg sync.WaitGroup
	for i := 0; i < triggers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], runErrs[i] = f.scheduler.Run(context.Background())
		}(i)
	}
	wg.Wait()

	executed := 0
	for i, r := range results {
		require.NoError(t, runErrs[i])
		executed += r.CampaignsExecuted
	}
	assert.Equal(t, 1, executed, "overlapping triggers must execute a campaign exactly once")
	assert.Len(t, f.audit.byKind(commands.AuditCampaignClaimed), 1)
	assert.Equal(t, len(contractors), f.provider.callCount(), "each contractor receives one email in total")
}

func TestRun_SecondRunIsNoOp(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	job, _ := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 2)
	f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)

	first, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.CampaignsExecuted)
	auditAfterFirst := f.audit.count()
	callsAfterFirst := f.provider.callCount()

	second, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.CampaignsProcessed)
	assert.Zero(t, second.CampaignsExecuted)
	assert.Equal(t, auditAfterFirst, f.audit.count(), "re-run appends nothing")
	assert.Equal(t, callsAfterFirst, f.provider.callCount(), "re-run sends nothing")
}

func TestRun_InactiveTemplateIsolatesCampaign(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	job, contractors := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 2)
	healthy := f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)
	broken := f.seedCampaign(job, campaign.TypeFinal21, mustTime(t, "2025-02-28T00:00:00+08:00"), campaign.StatusPending)

	f.templates.errs[campaign.TypeFinal21] = template.ErrInactive

	result, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.CampaignsProcessed)
	assert.Equal(t, 2, result.CampaignsExecuted)
	assert.Zero(t, result.CampaignsFailed)

	// The broken campaign's sends fail without touching the provider or the
	// retry budget; the healthy campaign is unaffected.
	for _, c := range contractors {
		faulted := f.sends.byPair(broken.ID, c.ID)
		require.NotNil(t, faulted)
		assert.Equal(t, send.StatusFailed, faulted.DeliveryStatus)
		assert.Zero(t, faulted.RetryCount)

		ok := f.sends.byPair(healthy.ID, c.ID)
		require.NotNil(t, ok)
		assert.Equal(t, send.StatusSent, ok.DeliveryStatus)
	}
	assert.Equal(t, len(contractors), f.provider.callCount())
	assert.Len(t, f.audit.byKind(commands.AuditTemplateFault), 2)
	assert.Len(t, f.audit.byKind(commands.AuditCampaignCompleted), 2)
}

func TestRun_ConfigFaultFailsCampaign(t *testing.T) {
	f := newSchedulerFixture(t, func(cfg *config.Config) {
		cfg.Delivery.MakeWebhook = ""
	})
	job, _ := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 2)
	dc := f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)

	result, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.CampaignsFailed)
	assert.Zero(t, result.CampaignsExecuted)
	require.Len(t, result.Errors, 1)

	assert.Equal(t, campaign.StatusFailed, f.campaigns.statusOf(dc.ID))
	assert.Len(t, f.audit.byKind(commands.AuditCampaignFailed), 1)
	assert.Zero(t, f.provider.callCount())
}

func TestRun_FailsClosedOnUnreadableJobs(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	job, _ := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 1)
	dc := f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)
	f.jobs.readErr = errs.New("connection refused")

	result, err := f.scheduler.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSchedulerRead)
	assert.Nil(t, result)

	assert.Equal(t, campaign.StatusPending, f.campaigns.statusOf(dc.ID), "no claims on unreadable state")
	assert.Zero(t, f.audit.count())
	assert.Zero(t, f.provider.callCount())
}

func TestRun_CancellationStopsRemainingSends(t *testing.T) {
	f := newSchedulerFixture(t, func(cfg *config.Config) {
		cfg.Scheduler.MaxConcurrency = 1
	})
	job, _ := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 3)
	dc := f.seedCampaign(job, campaign.TypeReminder14, mustTime(t, "2025-03-07T00:00:00+08:00"), campaign.StatusPending)

	// Cancel from outside while the first contractor's email is in flight.
	f.provider.onSend = func(commands.ProviderMessage) {
		_, _ = f.campaigns.Cancel(context.Background(), dc.ID)
	}

	result, err := f.scheduler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.CampaignsExecuted)

	assert.Equal(t, 1, f.provider.callCount(), "dispatched emails are not recalled, later ones are stopped")
	assert.Equal(t, campaign.StatusCancelled, f.campaigns.statusOf(dc.ID))
	assert.Len(t, f.audit.byKind(commands.AuditCampaignCancelled), 1)
	assert.Empty(t, f.audit.byKind(commands.AuditCampaignCompleted))
}

func TestCancel(t *testing.T) {
	f := newSchedulerFixture(t, nil)
	job, _ := f.seedJob(t, mustTime(t, "2025-03-21T00:00:00+08:00"), 1)
	dc := f.seedCampaign(job, campaign.TypeReminder7, mustTime(t, "2025-03-14T00:00:00+08:00"), campaign.StatusPending)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cmd := commands.NewCampaignCommands(f.campaigns, f.audit, logger)

	require.NoError(t, cmd.Cancel(context.Background(), dc.ID))
	assert.Equal(t, campaign.StatusCancelled, f.campaigns.statusOf(dc.ID))
	assert.Len(t, f.audit.byKind(commands.AuditCampaignCancelled), 1)

	// Terminal campaigns and unknown ids both report not found.
	assert.ErrorIs(t, cmd.Cancel(context.Background(), dc.ID), errs.ErrCampaignNotFound)
	assert.ErrorIs(t, cmd.Cancel(context.Background(), uuid.New()), errs.ErrCampaignNotFound)
}
