package components

import (
	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/infra/provider"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"
	"github.com/coastalprograms/swms-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.DeliveryConfig {
		return cfg.Delivery
	},
	func(cfg config.Config, clk clock.Clock) *token.Issuer {
		return token.NewIssuer(cfg.Portal.TokenTTL, clk)
	},
	fx.Annotate(
		provider.NewWebhookClient,
		fx.As(new(commands.Provider)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDeliveryPipeline,
		commands.NewSchedulerCommands,
		commands.NewCampaignCommands,
		commands.NewPortalCommands,
		commands.NewCallbackCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAuditQueries,
		queries.NewMetricsQueries,
	),
)
