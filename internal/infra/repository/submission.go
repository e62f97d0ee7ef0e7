package repository

import (
	"context"
	"time"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubmissionRepository struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ commands.SubmissionRepository = (*SubmissionRepository)(nil)

// Record keeps the first submission per (job, contractor); resubmitting
// through a fresh portal link is a no-op here and a new audit entry upstream.
func (r *SubmissionRepository) Record(ctx context.Context, jobID, contractorID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO swms_submissions (job_id, contractor_id, submitted_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_id, contractor_id) DO NOTHING`,
		jobID, contractorID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record submission", err)
	}
	return nil
}
