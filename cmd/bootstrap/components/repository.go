package components

import (
	"github.com/coastalprograms/swms-engine/internal/infra/readstore"
	repo_impl "github.com/coastalprograms/swms-engine/internal/infra/repository"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewCampaignRepository,
			fx.As(new(commands.CampaignRepository)),
		),
		fx.Annotate(
			repo_impl.NewSendRepository,
			fx.As(new(commands.SendRepository)),
		),
		fx.Annotate(
			repo_impl.NewAuditRepository,
			fx.As(new(commands.AuditWriter)),
		),
		fx.Annotate(
			repo_impl.NewSubmissionRepository,
			fx.As(new(commands.SubmissionRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewJobReadStore,
			fx.As(new(commands.JobReads)),
		),
		fx.Annotate(
			readstore.NewTemplateReadStore,
			fx.As(new(commands.TemplateReads)),
		),
		fx.Annotate(
			readstore.NewPortalReadStore,
			fx.As(new(commands.PortalReads)),
		),
		fx.Annotate(
			readstore.NewAuditReadStore,
			fx.As(new(queries.AuditReadStore)),
		),
		fx.Annotate(
			readstore.NewMetricsReadStore,
			fx.As(new(queries.MetricsReadStore)),
		),
	),
)
