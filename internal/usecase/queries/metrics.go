package queries

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrMetricsRead = errs.New("failed to read compliance metrics")

type MetricsReadStore interface {
	SubmissionCount(ctx context.Context, jobID uuid.UUID) (SubmissionCount, error)
	SendCounts(ctx context.Context, campaignID uuid.UUID) (SendCounts, error)
}

// MetricsQueries is the compliance metrics aggregator: read-only scans over
// EmailSend and NotificationAudit state. It runs concurrently with the write
// path without locking, so counts are eventually consistent, which is fine
// for a dashboard.
type MetricsQueries interface {
	SubmissionCount(ctx context.Context, jobID uuid.UUID) (SubmissionCount, error)
	CampaignMetrics(ctx context.Context, campaignID uuid.UUID) (CampaignMetrics, error)
}

type metricsQueriesImpl struct {
	store MetricsReadStore
}

func NewMetricsQueries(store MetricsReadStore) MetricsQueries {
	return &metricsQueriesImpl{store: store}
}

func (q *metricsQueriesImpl) SubmissionCount(ctx context.Context, jobID uuid.UUID) (SubmissionCount, error) {
	counts, err := q.store.SubmissionCount(ctx, jobID)
	if err != nil {
		return SubmissionCount{}, errs.Mark(err, ErrMetricsRead)
	}
	counts.Pending = counts.Total - counts.Submitted
	return counts, nil
}

func (q *metricsQueriesImpl) CampaignMetrics(ctx context.Context, campaignID uuid.UUID) (CampaignMetrics, error) {
	raw, err := q.store.SendCounts(ctx, campaignID)
	if err != nil {
		return CampaignMetrics{}, errs.Mark(err, ErrMetricsRead)
	}

	m := CampaignMetrics{
		CampaignID: campaignID,
		TotalSends: raw.Total,
	}
	if raw.Total > 0 {
		m.OpenRate = float64(raw.Opened) / float64(raw.Total)
		m.ClickRate = float64(raw.Clicked) / float64(raw.Total)
		m.FailureRate = float64(raw.Failed) / float64(raw.Total)
	}
	return m, nil
}
