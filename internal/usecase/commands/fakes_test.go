//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// In-memory doubles that reproduce the conditional-write semantics of the
// real repositories, so the claim race can be exercised without a database.

func tokenFor(value string, issuedAt, expiresAt time.Time) token.Token {
	return token.Token{Value: value, IssuedAt: issuedAt, ExpiresAt: expiresAt}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

type fakeJobs struct {
	mu          sync.Mutex
	jobs        []commands.JobSnapshot
	contractors map[uuid.UUID][]commands.ContractorSnapshot
	readErr     error
}

func (f *fakeJobs) OpenJobs(context.Context) ([]commands.JobSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.jobs, nil
}

func (f *fakeJobs) PendingContractors(_ context.Context, jobID uuid.UUID) ([]commands.ContractorSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.contractors[jobID], nil
}

type campaignRow struct {
	commands.DueCampaign
	status campaign.Status
}

type fakeCampaigns struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*campaignRow
	// statusHook runs inside Status, letting tests flip a campaign to
	// cancelled mid fan-out.
	statusHook func(id uuid.UUID)
}

func newFakeCampaigns() *fakeCampaigns {
	return &fakeCampaigns{rows: map[uuid.UUID]*campaignRow{}}
}

func (f *fakeCampaigns) seed(dc commands.DueCampaign, status campaign.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[dc.ID] = &campaignRow{DueCampaign: dc, status: status}
}

func (f *fakeCampaigns) EnsureScheduled(_ context.Context, jobID uuid.UUID, t campaign.Type, scheduledDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.JobID == jobID && row.CampaignType == t && row.status != campaign.StatusCancelled {
			return nil
		}
	}
	id := uuid.New()
	f.rows[id] = &campaignRow{
		DueCampaign: commands.DueCampaign{
			ID:            id,
			JobID:         jobID,
			CampaignType:  t,
			ScheduledDate: scheduledDate,
		},
		status: campaign.StatusPending,
	}
	return nil
}

func (f *fakeCampaigns) DueCampaigns(_ context.Context, now time.Time) ([]commands.DueCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var due []commands.DueCampaign
	for _, row := range f.rows {
		if row.status == campaign.StatusPending && !row.ScheduledDate.After(now) {
			due = append(due, row.DueCampaign)
		}
	}
	return due, nil
}

func (f *fakeCampaigns) transition(id uuid.UUID, from []campaign.Status, to campaign.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if row.status == s {
			row.status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCampaigns) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, []campaign.Status{campaign.StatusPending}, campaign.StatusActive)
}

func (f *fakeCampaigns) Complete(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, []campaign.Status{campaign.StatusActive}, campaign.StatusCompleted)
}

func (f *fakeCampaigns) Fail(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, []campaign.Status{campaign.StatusActive}, campaign.StatusFailed)
}

func (f *fakeCampaigns) Cancel(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, []campaign.Status{campaign.StatusPending, campaign.StatusActive}, campaign.StatusCancelled)
}

func (f *fakeCampaigns) Status(_ context.Context, id uuid.UUID) (campaign.Status, error) {
	if f.statusHook != nil {
		f.statusHook(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return "", errs.ErrCampaignNotFound
	}
	return row.status, nil
}

func (f *fakeCampaigns) statusOf(id uuid.UUID) campaign.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id].status
}

type sendRow struct {
	commands.SendSnapshot
	tokenValue  string
	lastRetryAt time.Time
	errMsg      string
	openedAt    *time.Time
	clickedAt   *time.Time
}

type fakeSends struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*sendRow
	// recordAttemptErrs is consumed once per call to simulate transient
	// persistence failures.
	recordAttemptErrs []error
}

func newFakeSends() *fakeSends {
	return &fakeSends{rows: map[uuid.UUID]*sendRow{}}
}

func (f *fakeSends) IssueToken(_ context.Context, campaignID, contractorID uuid.UUID, email string, tok token.Token) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.CampaignID == campaignID && row.ContractorID == contractorID {
			row.tokenValue = tok.Value
			row.TokenIssuedAt = tok.IssuedAt
			row.TokenExpiresAt = tok.ExpiresAt
			row.DeliveryStatus = send.StatusPending
			row.RetryCount = 0
			return row.ID, nil
		}
	}
	id := uuid.New()
	f.rows[id] = &sendRow{
		SendSnapshot: commands.SendSnapshot{
			ID:             id,
			CampaignID:     campaignID,
			ContractorID:   contractorID,
			RecipientEmail: email,
			TokenIssuedAt:  tok.IssuedAt,
			TokenExpiresAt: tok.ExpiresAt,
			DeliveryStatus: send.StatusPending,
		},
		tokenValue: tok.Value,
	}
	return id, nil
}

func (f *fakeSends) RecordAttempt(_ context.Context, sendID uuid.UUID, retryCount int, at time.Time, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.recordAttemptErrs) > 0 {
		err := f.recordAttemptErrs[0]
		f.recordAttemptErrs = f.recordAttemptErrs[1:]
		if err != nil {
			return err
		}
	}
	row := f.rows[sendID]
	row.RetryCount = retryCount
	row.lastRetryAt = at
	row.errMsg = errMsg
	return nil
}

func (f *fakeSends) MarkSent(_ context.Context, sendID uuid.UUID) error {
	return f.setStatus(sendID, send.StatusSent)
}

func (f *fakeSends) MarkFailed(_ context.Context, sendID uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.rows[sendID]
	row.DeliveryStatus = send.StatusFailed
	row.errMsg = reason
	return nil
}

func (f *fakeSends) MarkDeliveryStatus(_ context.Context, sendID uuid.UUID, status send.DeliveryStatus) error {
	return f.setStatus(sendID, status)
}

func (f *fakeSends) setStatus(sendID uuid.UUID, status send.DeliveryStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[sendID].DeliveryStatus = status
	return nil
}

func (f *fakeSends) StampOpened(_ context.Context, sendID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row := f.rows[sendID]; row.openedAt == nil {
		row.openedAt = &at
	}
	return nil
}

func (f *fakeSends) StampClicked(_ context.Context, sendID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row := f.rows[sendID]; row.clickedAt == nil {
		row.clickedAt = &at
	}
	return nil
}

func (f *fakeSends) FindByToken(_ context.Context, tokenValue string) (*commands.SendSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.tokenValue == tokenValue {
			snap := row.SendSnapshot
			return &snap, nil
		}
	}
	return nil, errs.New("email send not found")
}

func (f *fakeSends) FindByPair(_ context.Context, campaignID, contractorID uuid.UUID) (*commands.SendSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.CampaignID == campaignID && row.ContractorID == contractorID {
			snap := row.SendSnapshot
			return &snap, nil
		}
	}
	return nil, errs.New("email send not found")
}

func (f *fakeSends) byPair(campaignID, contractorID uuid.UUID) *sendRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.CampaignID == campaignID && row.ContractorID == contractorID {
			return row
		}
	}
	return nil
}

type fakeTemplates struct {
	mu   sync.Mutex
	byTy map[campaign.Type]template.EmailTemplate
	errs map[campaign.Type]error
}

func newFakeTemplates() *fakeTemplates {
	active := func(t campaign.Type) template.EmailTemplate {
		return template.EmailTemplate{
			ID:           uuid.New(),
			CampaignType: string(t),
			Subject:      "SWMS due for {{.JobName}}",
			HTMLBody:     "<p>{{.ContractorName}}: {{.PortalURL}}</p>",
			TextBody:     "{{.ContractorName}}: {{.PortalURL}}",
			IsActive:     true,
		}
	}
	byTy := map[campaign.Type]template.EmailTemplate{}
	for _, t := range campaign.AllTypes() {
		byTy[t] = active(t)
	}
	return &fakeTemplates{byTy: byTy, errs: map[campaign.Type]error{}}
}

func (f *fakeTemplates) ActiveByType(_ context.Context, t campaign.Type) (template.EmailTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[t]; err != nil {
		return template.EmailTemplate{}, err
	}
	return f.byTy[t], nil
}

type auditRecord struct {
	commands.AuditEntry
	id int64
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditRecord
	nextID  int64
}

func (f *fakeAudit) Append(_ context.Context, entry commands.AuditEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.entries = append(f.entries, auditRecord{AuditEntry: entry, id: f.nextID})
	return f.nextID, nil
}

func (f *fakeAudit) byKind(kind string) []auditRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []auditRecord
	for _, e := range f.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeAudit) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// fakeProvider returns scripted errors in order, then succeeds.
type fakeProvider struct {
	mu       sync.Mutex
	script   []error
	calls    int
	messages []commands.ProviderMessage
	onSend   func(commands.ProviderMessage)
}

func (f *fakeProvider) Send(_ context.Context, msg commands.ProviderMessage) error {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.messages = append(f.messages, msg)
	hook := f.onSend
	f.mu.Unlock()

	if hook != nil {
		hook(msg)
	}
	if call < len(f.script) {
		return f.script[call]
	}
	return nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
