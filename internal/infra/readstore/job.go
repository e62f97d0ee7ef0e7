package readstore

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobReadStore supplies the scheduler's fail-closed view of compliance work.
type JobReadStore struct {
	db *pgxpool.Pool
}

func NewJobReadStore(db *pgxpool.Pool) *JobReadStore {
	return &JobReadStore{db: db}
}

var _ commands.JobReads = (*JobReadStore)(nil)

// OpenJobs returns jobs still carrying an unsatisfied SWMS requirement: open
// status and at least one rostered contractor without a submission.
func (r *JobReadStore) OpenJobs(ctx context.Context) ([]commands.JobSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT j.id, j.job_name, j.requirements, s.name, j.due_date
		FROM swms_jobs j
		JOIN job_sites s ON s.id = j.job_site_id
		WHERE j.status = 'open'
		  AND EXISTS (
			SELECT 1 FROM job_contractors jc
			WHERE jc.job_id = j.id
			  AND NOT EXISTS (
				SELECT 1 FROM swms_submissions sub
				WHERE sub.job_id = jc.job_id AND sub.contractor_id = jc.contractor_id
			  )
		  )
		ORDER BY j.due_date`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query open jobs", err)
	}
	defer rows.Close()

	var jobs []commands.JobSnapshot
	for rows.Next() {
		var job commands.JobSnapshot
		if err := rows.Scan(&job.ID, &job.JobName, &job.Requirements, &job.JobSiteName, &job.DueDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan open job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate open jobs", err)
	}
	return jobs, nil
}

// PendingContractors is the job roster minus contractors who already
// submitted; those need no further reminders.
func (r *JobReadStore) PendingContractors(ctx context.Context, jobID uuid.UUID) ([]commands.ContractorSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.company_name, c.contact_name, c.email
		FROM contractors c
		JOIN job_contractors jc ON jc.contractor_id = c.id
		WHERE jc.job_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM swms_submissions sub
			WHERE sub.job_id = jc.job_id AND sub.contractor_id = c.id
		  )
		ORDER BY c.company_name`,
		jobID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query pending contractors", err)
	}
	defer rows.Close()

	var contractors []commands.ContractorSnapshot
	for rows.Next() {
		var c commands.ContractorSnapshot
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.ContactName, &c.Email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan contractor", err)
		}
		contractors = append(contractors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate contractors", err)
	}
	return contractors, nil
}
