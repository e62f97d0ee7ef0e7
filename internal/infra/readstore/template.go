package readstore

import (
	"context"

	"github.com/coastalprograms/swms-engine/internal/domain/campaign"
	"github.com/coastalprograms/swms-engine/internal/domain/template"
	"github.com/coastalprograms/swms-engine/internal/infra"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TemplateReadStore struct {
	db *pgxpool.Pool
}

func NewTemplateReadStore(db *pgxpool.Pool) *TemplateReadStore {
	return &TemplateReadStore{db: db}
}

var _ commands.TemplateReads = (*TemplateReadStore)(nil)

// ActiveByType prefers the active template for the type; when only inactive
// ones exist the caller gets ErrInactive rather than ErrNotFound so the audit
// trail names the real configuration fault.
func (r *TemplateReadStore) ActiveByType(ctx context.Context, t campaign.Type) (template.EmailTemplate, error) {
	var tpl template.EmailTemplate
	err := r.db.QueryRow(ctx, `
		SELECT id, campaign_type, name, subject, html_body, text_body, is_active, updated_at
		FROM email_templates
		WHERE campaign_type = $1
		ORDER BY is_active DESC, updated_at DESC
		LIMIT 1`,
		string(t),
	).Scan(&tpl.ID, &tpl.CampaignType, &tpl.Name, &tpl.Subject, &tpl.HTMLBody, &tpl.TextBody, &tpl.IsActive, &tpl.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return template.EmailTemplate{}, template.ErrNotFound
		}
		return template.EmailTemplate{}, infra.WrapRepoErr("failed to load email template", err)
	}

	if !tpl.IsActive {
		return template.EmailTemplate{}, template.ErrInactive
	}
	return tpl, nil
}
