package repository

import (
	"context"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CampaignRepository owns email_campaigns rows. The status machine is
// enforced with single conditional UPDATEs. There is deliberately no
// read-then-write anywhere in this file: the WHERE clause carries the
// expected prior status, which is what closes the concurrent-claim race.
type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

var _ commands.CampaignRepository = (*CampaignRepository)(nil)

func (r *CampaignRepository) EnsureScheduled(ctx context.Context, jobID uuid.UUID, t campaign.Type, scheduledDate time.Time) error {
	// The partial unique index on (job_id, campaign_type) WHERE status <>
	// 'cancelled' makes this idempotent: a live campaign already exists, the
	// insert is a no-op.
	_, err := r.db.Exec(ctx, `
		INSERT INTO email_campaigns (job_id, campaign_type, status, scheduled_date)
		VALUES ($1, $2, 'pending', $3)
		ON CONFLICT DO NOTHING`,
		jobID, string(t), scheduledDate,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to ensure campaign scheduled", err)
	}
	return nil
}

func (r *CampaignRepository) DueCampaigns(ctx context.Context, now time.Time) ([]commands.DueCampaign, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.job_id, c.campaign_type, c.scheduled_date,
		       j.job_name, s.name, j.due_date
		FROM email_campaigns c
		JOIN swms_jobs j ON j.id = c.job_id
		JOIN job_sites s ON s.id = j.job_site_id
		WHERE c.status = 'pending' AND c.scheduled_date <= $1
		ORDER BY c.scheduled_date`,
		now,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query due campaigns", err)
	}
	defer rows.Close()

	var due []commands.DueCampaign
	for rows.Next() {
		var (
			dc           commands.DueCampaign
			campaignType string
		)
		if err := rows.Scan(&dc.ID, &dc.JobID, &campaignType, &dc.ScheduledDate,
			&dc.JobName, &dc.JobSiteName, &dc.DueDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan due campaign", err)
		}
		dc.CampaignType = campaign.Type(campaignType)
		if !dc.CampaignType.Valid() {
			return nil, infra.WrapRepoErr("unknown campaign type "+campaignType, nil, infra.KindDBFailure)
		}
		due = append(due, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate due campaigns", err)
	}
	return due, nil
}

// Claim performs the atomic pending->active transition. Exactly one caller
// observes true per campaign no matter how many invocations race.
func (r *CampaignRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.conditionalTransition(ctx, id, campaign.StatusActive, "failed to claim campaign")
}

func (r *CampaignRepository) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.conditionalTransition(ctx, id, campaign.StatusCompleted, "failed to complete campaign")
}

func (r *CampaignRepository) Fail(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.conditionalTransition(ctx, id, campaign.StatusFailed, "failed to fail campaign")
}

func (r *CampaignRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.conditionalTransition(ctx, id, campaign.StatusCancelled, "failed to cancel campaign")
}

// conditionalTransition issues the single UPDATE whose WHERE clause carries the
// statuses the domain machine allows to precede the target.
func (r *CampaignRepository) conditionalTransition(ctx context.Context, id uuid.UUID, to campaign.Status, msg string) (bool, error) {
	from := campaign.TransitionsInto(to)
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE email_campaigns
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = ANY($3)`,
		id, string(to), fromStrs,
	)
	if err != nil {
		return false, infra.WrapRepoErr(msg, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CampaignRepository) Status(ctx context.Context, id uuid.UUID) (campaign.Status, error) {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM email_campaigns WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if infra.IsNoRows(err) {
			return "", infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to read campaign status", err)
	}
	return campaign.Status(status), nil
}
