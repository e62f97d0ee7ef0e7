package readstore

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PortalReadStore struct {
	db *pgxpool.Pool
}

func NewPortalReadStore(db *pgxpool.Pool) *PortalReadStore {
	return &PortalReadStore{db: db}
}

var _ commands.PortalReads = (*PortalReadStore)(nil)

// ResolveToken walks token -> send -> (campaign, contractor, job, job_site).
// A superseded token was overwritten on its row, so it misses the index just
// like one that never existed.
func (r *PortalReadStore) ResolveToken(ctx context.Context, tokenValue string) (*commands.PortalResolution, error) {
	var res commands.PortalResolution
	err := r.db.QueryRow(ctx, `
		SELECT es.id, es.campaign_id, c.campaign_type,
		       es.contractor_id, ct.contact_name, ct.company_name,
		       j.id, j.job_name, j.requirements, s.name, s.address,
		       j.due_date, es.token_expires_at,
		       EXISTS (
			 SELECT 1 FROM swms_submissions sub
			 WHERE sub.job_id = j.id AND sub.contractor_id = es.contractor_id
		       )
		FROM email_sends es
		JOIN email_campaigns c ON c.id = es.campaign_id
		JOIN contractors ct ON ct.id = es.contractor_id
		JOIN swms_jobs j ON j.id = c.job_id
		JOIN job_sites s ON s.id = j.job_site_id
		WHERE es.portal_token = $1`,
		tokenValue,
	).Scan(
		&res.SendID, &res.CampaignID, &res.CampaignType,
		&res.ContractorID, &res.ContractorName, &res.CompanyName,
		&res.JobID, &res.JobName, &res.Requirements, &res.JobSiteName, &res.JobSiteAddress,
		&res.DueDate, &res.TokenExpiresAt, &res.Submitted,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("portal token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to resolve portal token", err)
	}
	return &res, nil
}
