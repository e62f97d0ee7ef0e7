package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/coastalprograms/swms-engine/internal/handler/httperr"
	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	TriggerTokenHeader  = "X-Trigger-Token"
	WebhookSecretHeader = "X-Webhook-Secret"
)

// TriggerAuthMiddleware guards the administration surface with the shared
// secret held by the external timer. There are no user accounts on this
// service; contractors only ever come through tokenized portal links.
type TriggerAuthMiddleware struct {
	cfg config.Config
}

func NewTriggerAuthMiddleware(cfg config.Config) *TriggerAuthMiddleware {
	return &TriggerAuthMiddleware{cfg: cfg}
}

func (m *TriggerAuthMiddleware) RequireTriggerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(TriggerTokenHeader)
		want := m.cfg.Scheduler.TriggerToken
		if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("trigger token mismatch"), "Unauthorized", nil)
			return
		}
		c.Next()
	}
}

// RequireWebhookSecret validates provider callbacks. An empty configured
// secret disables the check, matching providers that cannot attach headers.
func (m *TriggerAuthMiddleware) RequireWebhookSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		want := m.cfg.Delivery.WebhookSecret
		if want == "" {
			c.Next()
			return
		}
		got := c.GetHeader(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("webhook secret mismatch"), "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
