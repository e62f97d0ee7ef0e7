package readstore

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MetricsReadStore struct {
	db *pgxpool.Pool
}

func NewMetricsReadStore(db *pgxpool.Pool) *MetricsReadStore {
	return &MetricsReadStore{db: db}
}

var _ queries.MetricsReadStore = (*MetricsReadStore)(nil)

func (r *MetricsReadStore) SubmissionCount(ctx context.Context, jobID uuid.UUID) (queries.SubmissionCount, error) {
	var counts queries.SubmissionCount
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM job_contractors WHERE job_id = $1),
			(SELECT count(*) FROM swms_submissions WHERE job_id = $1)`,
		jobID,
	).Scan(&counts.Total, &counts.Submitted)
	if err != nil {
		return queries.SubmissionCount{}, infra.WrapRepoErr("failed to count submissions", err)
	}
	return counts, nil
}

func (r *MetricsReadStore) SendCounts(ctx context.Context, campaignID uuid.UUID) (queries.SendCounts, error) {
	var counts queries.SendCounts
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE delivery_status IN ('sent', 'delivered')),
		       count(*) FILTER (WHERE delivery_status IN ('failed', 'bounced')),
		       count(opened_at),
		       count(clicked_at)
		FROM email_sends
		WHERE campaign_id = $1`,
		campaignID,
	).Scan(&counts.Total, &counts.Sent, &counts.Failed, &counts.Opened, &counts.Clicked)
	if err != nil {
		return queries.SendCounts{}, infra.WrapRepoErr("failed to count campaign sends", err)
	}
	return counts, nil
}
