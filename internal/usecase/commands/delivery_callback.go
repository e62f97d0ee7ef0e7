package commands

import (
	"context"
	"log/slog"

	"github.com/coastalprograms/swms-engine/internal/domain/send"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUnknownDeliveryEvent = errs.New("unknown delivery event")

// DeliveryEvent is what the automation provider reports back about a send it
// has dispatched on our behalf.
type DeliveryEvent struct {
	CampaignID   uuid.UUID
	ContractorID uuid.UUID
	Event        string // delivered | bounced | opened | clicked
}

// CallbackCommands applies provider callbacks to EmailSend rows. Status
// refinements (delivered, bounced) only land on sends the pipeline already
// marked sent; open/click are timestamps feeding the metrics aggregator.
type CallbackCommands interface {
	Apply(ctx context.Context, ev DeliveryEvent) error
}

type callbackCommandsImpl struct {
	sends  SendRepository
	audit  AuditWriter
	clock  clock.Clock
	logger *slog.Logger
}

func NewCallbackCommands(sends SendRepository, audit AuditWriter, clk clock.Clock, logger *slog.Logger) CallbackCommands {
	return &callbackCommandsImpl{sends: sends, audit: audit, clock: clk, logger: logger}
}

func (c *callbackCommandsImpl) Apply(ctx context.Context, ev DeliveryEvent) error {
	snap, err := c.sends.FindByPair(ctx, ev.CampaignID, ev.ContractorID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabase)
	}

	now := c.clock.Now()

	switch ev.Event {
	case "delivered":
		err = c.sends.MarkDeliveryStatus(ctx, snap.ID, send.StatusDelivered)
	case "bounced":
		err = c.sends.MarkDeliveryStatus(ctx, snap.ID, send.StatusBounced)
	case "opened":
		err = c.sends.StampOpened(ctx, snap.ID, now)
	case "clicked":
		err = c.sends.StampClicked(ctx, snap.ID, now)
	default:
		return ErrUnknownDeliveryEvent
	}
	if err != nil {
		return errs.Mark(err, errs.ErrDatabase)
	}

	_, auditErr := c.audit.Append(ctx, AuditEntry{
		Kind:         AuditDeliveryUpdate,
		CampaignID:   &ev.CampaignID,
		ContractorID: &ev.ContractorID,
		Payload:      map[string]any{"event": ev.Event},
		Result:       ResultSuccess,
	})
	if auditErr != nil {
		c.logger.Error("failed to append audit entry", "kind", AuditDeliveryUpdate, "error", auditErr)
	}
	return nil
}
