package repository

import (
	"context"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SendRepository owns email_sends rows on behalf of the delivery pipeline.
type SendRepository struct {
	db *pgxpool.Pool
}

func NewSendRepository(db *pgxpool.Pool) *SendRepository {
	return &SendRepository{db: db}
}

var _ commands.SendRepository = (*SendRepository)(nil)

// IssueToken creates the send row for a (campaign, contractor) pair, or on
// re-issue overwrites the stored token in the same statement. The upsert is
// the atomic supersede: there is no instant at which both the old and new
// token resolve.
func (r *SendRepository) IssueToken(ctx context.Context, campaignID, contractorID uuid.UUID, email string, tok token.Token) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO email_sends
			(campaign_id, contractor_id, recipient_email, portal_token,
			 token_issued_at, token_expires_at, delivery_status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		ON CONFLICT (campaign_id, contractor_id) DO UPDATE SET
			recipient_email  = EXCLUDED.recipient_email,
			portal_token     = EXCLUDED.portal_token,
			token_issued_at  = EXCLUDED.token_issued_at,
			token_expires_at = EXCLUDED.token_expires_at,
			delivery_status  = 'pending',
			retry_count      = 0,
			last_retry_at    = NULL,
			error_message    = NULL,
			updated_at       = now()
		RETURNING id`,
		campaignID, contractorID, email, tok.Value, tok.IssuedAt, tok.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to issue portal token", err)
	}
	return id, nil
}

func (r *SendRepository) RecordAttempt(ctx context.Context, sendID uuid.UUID, retryCount int, at time.Time, errMsg string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE email_sends
		SET retry_count = $2, last_retry_at = $3, error_message = NULLIF($4, ''), updated_at = now()
		WHERE id = $1`,
		sendID, retryCount, at, errMsg,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record delivery attempt", err)
	}
	return nil
}

func (r *SendRepository) MarkSent(ctx context.Context, sendID uuid.UUID) error {
	return r.setStatus(ctx, sendID, send.StatusSent, "failed to mark send as sent")
}

func (r *SendRepository) MarkFailed(ctx context.Context, sendID uuid.UUID, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE email_sends
		SET delivery_status = 'failed', error_message = $2, updated_at = now()
		WHERE id = $1`,
		sendID, reason,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark send as failed", err)
	}
	return nil
}

func (r *SendRepository) MarkDeliveryStatus(ctx context.Context, sendID uuid.UUID, status send.DeliveryStatus) error {
	return r.setStatus(ctx, sendID, status, "failed to update delivery status")
}

func (r *SendRepository) setStatus(ctx context.Context, sendID uuid.UUID, status send.DeliveryStatus, msg string) error {
	// The value ends up in a CHECK-constrained column; catching an unknown
	// status here keeps the constraint violation out of the pg error path.
	if !status.Valid() {
		return infra.WrapRepoErr("unknown delivery status "+string(status), nil, infra.KindDBFailure)
	}
	_, err := r.db.Exec(ctx, `
		UPDATE email_sends SET delivery_status = $2, updated_at = now() WHERE id = $1`,
		sendID, string(status),
	)
	if err != nil {
		return infra.WrapRepoErr(msg, err)
	}
	return nil
}

// StampOpened keeps the first observation; repeat opens do not move it.
func (r *SendRepository) StampOpened(ctx context.Context, sendID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE email_sends SET opened_at = COALESCE(opened_at, $2), updated_at = now() WHERE id = $1`,
		sendID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to stamp open", err)
	}
	return nil
}

func (r *SendRepository) StampClicked(ctx context.Context, sendID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE email_sends SET clicked_at = COALESCE(clicked_at, $2), updated_at = now() WHERE id = $1`,
		sendID, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to stamp click", err)
	}
	return nil
}

func (r *SendRepository) FindByToken(ctx context.Context, tokenValue string) (*commands.SendSnapshot, error) {
	return r.findOne(ctx, `
		SELECT id, campaign_id, contractor_id, recipient_email,
		       token_issued_at, token_expires_at, delivery_status, retry_count
		FROM email_sends WHERE portal_token = $1`,
		tokenValue)
}

func (r *SendRepository) FindByPair(ctx context.Context, campaignID, contractorID uuid.UUID) (*commands.SendSnapshot, error) {
	return r.findOne(ctx, `
		SELECT id, campaign_id, contractor_id, recipient_email,
		       token_issued_at, token_expires_at, delivery_status, retry_count
		FROM email_sends WHERE campaign_id = $1 AND contractor_id = $2`,
		campaignID, contractorID)
}

func (r *SendRepository) findOne(ctx context.Context, query string, args ...any) (*commands.SendSnapshot, error) {
	var (
		snap   commands.SendSnapshot
		status string
	)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID, &snap.CampaignID, &snap.ContractorID, &snap.RecipientEmail,
		&snap.TokenIssuedAt, &snap.TokenExpiresAt, &status, &snap.RetryCount,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("email send not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find email send", err)
	}
	snap.DeliveryStatus = send.DeliveryStatus(status)
	return &snap, nil
}
