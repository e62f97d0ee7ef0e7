// Package provider implements the outbound contract with the email
// automation provider. Both supported providers (make.com and n8n) receive
// the same JSON payload on a webhook URL and perform the actual SMTP work.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coastalprograms/swms-engine/internal/pkg/config"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"
)

type WebhookClient struct {
	cfg    config.DeliveryConfig
	client *http.Client
}

func NewWebhookClient(cfg config.DeliveryConfig) *WebhookClient {
	return &WebhookClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ commands.Provider = (*WebhookClient)(nil)

// Send posts the message to the configured provider. Errors come back
// classified: credential/endpoint faults as errs.ErrConfig (never retried),
// everything else as errs.ErrDelivery (retried within the bounded budget).
func (c *WebhookClient) Send(ctx context.Context, msg commands.ProviderMessage) error {
	url := c.cfg.WebhookURL()
	if url == "" {
		return errs.Mark(errs.New("no webhook URL configured for provider "+c.cfg.Provider), errs.ErrConfig)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to encode provider payload"), errs.ErrDelivery)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to build provider request"), errs.ErrConfig)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.WebhookSecret != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.WebhookSecret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Timeouts and connection failures follow the retry policy.
		return errs.Mark(errs.Wrap(err, "provider request failed"), errs.ErrDelivery)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		// Bad or missing credentials is an operator problem, not a transient.
		return errs.Mark(
			errs.New(fmt.Sprintf("provider rejected credentials (%d): %s", resp.StatusCode, snippet)),
			errs.ErrConfig,
		)
	default:
		return errs.Mark(
			errs.New(fmt.Sprintf("provider returned %d: %s", resp.StatusCode, snippet)),
			errs.ErrDelivery,
		)
	}
}
