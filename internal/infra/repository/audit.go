package repository

import (
	"context"
	"encoding/json"

	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository is the append-only writer for notification_audit. It issues
// INSERTs and nothing else; there is no update or delete path by construction.
// Corrections are fresh entries referencing the original through ref_id.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ commands.AuditWriter = (*AuditRepository)(nil)

func (r *AuditRepository) Append(ctx context.Context, entry commands.AuditEntry) (int64, error) {
	payload := entry.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to marshal audit payload", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO notification_audit (kind, job_id, campaign_id, contractor_id, payload, result, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		entry.Kind, entry.JobID, entry.CampaignID, entry.ContractorID, raw, entry.Result, entry.RefID,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to append audit entry", err)
	}
	return id, nil
}
