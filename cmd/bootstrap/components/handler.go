package components

import (
	"github.com/coastalprograms/swms-engine/internal/handler"
	"github.com/coastalprograms/swms-engine/internal/handler/api"
	"github.com/coastalprograms/swms-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSchedulerHandler,
		api.NewPortalHandler,
		api.NewWebhookHandler,
		api.NewComplianceHandler,
		middleware.NewTriggerAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
