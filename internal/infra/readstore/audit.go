package readstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultLimit = 200
	maxLimit     = 1000
)

type AuditReadStore struct {
	db *pgxpool.Pool
}

func NewAuditReadStore(db *pgxpool.Pool) *AuditReadStore {
	return &AuditReadStore{db: db}
}

var _ queries.AuditReadStore = (*AuditReadStore)(nil)

func (r *AuditReadStore) Trail(ctx context.Context, f queries.Filter) ([]*queries.AuditEntryView, error) {
	where, args := auditFilterClauses(f, nil)
	return r.queryAudit(ctx, where, args, f)
}

// DocumentAccess is the Trail narrowed to portal access and submission events.
func (r *AuditReadStore) DocumentAccess(ctx context.Context, f queries.Filter) ([]*queries.AuditEntryView, error) {
	kinds := []string{"portal_access", "submission_recorded"}
	where, args := auditFilterClauses(f, kinds)
	return r.queryAudit(ctx, where, args, f)
}

func (r *AuditReadStore) queryAudit(ctx context.Context, where string, args []any, f queries.Filter) ([]*queries.AuditEntryView, error) {
	query := fmt.Sprintf(`
		SELECT id, kind, job_id, campaign_id, contractor_id, payload, result, ref_id, created_at
		FROM notification_audit
		%s
		ORDER BY id DESC
		LIMIT %d`, where, clampLimit(f.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query audit trail", err)
	}
	defer rows.Close()

	var out []*queries.AuditEntryView
	for rows.Next() {
		var v queries.AuditEntryView
		if err := rows.Scan(&v.ID, &v.Kind, &v.JobID, &v.CampaignID, &v.ContractorID,
			&v.Payload, &v.Result, &v.RefID, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit entry", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit entries", err)
	}
	return out, nil
}

func (r *AuditReadStore) EmailActivity(ctx context.Context, f queries.Filter) ([]*queries.EmailActivityItem, error) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.JobID != nil {
		add("c.job_id = $%d", *f.JobID)
	}
	if f.ContractorID != nil {
		add("es.contractor_id = $%d", *f.ContractorID)
	}
	if f.From != nil {
		add("es.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("es.created_at <= $%d", *f.To)
	}
	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT es.id, es.campaign_id, c.campaign_type, c.job_id,
		       es.contractor_id, ct.company_name, es.recipient_email,
		       es.delivery_status, es.retry_count, es.last_retry_at,
		       es.opened_at, es.clicked_at, es.created_at
		FROM email_sends es
		JOIN email_campaigns c ON c.id = es.campaign_id
		JOIN contractors ct ON ct.id = es.contractor_id
		%s
		ORDER BY es.created_at DESC
		LIMIT %d`, where, clampLimit(f.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query email activity", err)
	}
	defer rows.Close()

	var out []*queries.EmailActivityItem
	for rows.Next() {
		var v queries.EmailActivityItem
		if err := rows.Scan(&v.SendID, &v.CampaignID, &v.CampaignType, &v.JobID,
			&v.ContractorID, &v.CompanyName, &v.Recipient,
			&v.DeliveryStatus, &v.RetryCount, &v.LastRetryAt,
			&v.OpenedAt, &v.ClickedAt, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan email activity", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate email activity", err)
	}
	return out, nil
}

func auditFilterClauses(f queries.Filter, kinds []string) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.JobID != nil {
		add("job_id = $%d", *f.JobID)
	}
	if f.ContractorID != nil {
		add("contractor_id = $%d", *f.ContractorID)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(kinds) > 0 {
		add("kind = ANY($%d)", kinds)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
