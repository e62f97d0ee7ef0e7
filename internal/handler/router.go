package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/coastalprograms/swms-engine/internal/handler/api"
	"github.com/coastalprograms/swms-engine/internal/handler/middleware"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	schedulerHandler *api.SchedulerHandler,
	portalHandler *api.PortalHandler,
	webhookHandler *api.WebhookHandler,
	complianceHandler *api.ComplianceHandler,
	triggerAuth *middleware.TriggerAuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, schedulerHandler, portalHandler, webhookHandler, complianceHandler, triggerAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	schedulerHandler *api.SchedulerHandler,
	portalHandler *api.PortalHandler,
	webhookHandler *api.WebhookHandler,
	complianceHandler *api.ComplianceHandler,
	triggerAuth *middleware.TriggerAuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Contractor-facing surface: no accounts, the token is the credential.
	portal := engine.Group("/portal")
	{
		addRoutes(portal, []route{
			{Method: http.MethodGet, Path: "/:token", Handler: portalHandler.Access},
			{Method: http.MethodPost, Path: "/:token/submit", Handler: portalHandler.Submit},
		})
	}

	apiGroup := engine.Group("/api")
	{
		webhooks := apiGroup.Group("/webhooks")
		webhooks.Use(triggerAuth.RequireWebhookSecret())
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/delivery", Handler: webhookHandler.Delivery},
			})
		}

		admin := apiGroup.Group("")
		admin.Use(triggerAuth.RequireTriggerToken())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/scheduler/run", Handler: schedulerHandler.Run},
				{Method: http.MethodPost, Path: "/campaigns/:id/cancel", Handler: schedulerHandler.CancelCampaign},
				{Method: http.MethodGet, Path: "/compliance/audit", Handler: complianceHandler.AuditTrail},
				{Method: http.MethodGet, Path: "/compliance/email-activity", Handler: complianceHandler.EmailActivity},
				{Method: http.MethodGet, Path: "/compliance/document-access", Handler: complianceHandler.DocumentAccess},
				{Method: http.MethodGet, Path: "/compliance/jobs/:id/submissions", Handler: complianceHandler.JobSubmissions},
				{Method: http.MethodGet, Path: "/compliance/campaigns/:id/metrics", Handler: complianceHandler.CampaignMetrics},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
