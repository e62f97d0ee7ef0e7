package request

import (
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// DeliveryCallbackRequest is posted back by the automation provider after it
// hands a message to the mail service.
type DeliveryCallbackRequest struct {
	CampaignID   uuid.UUID `json:"campaign_id" binding:"required"`
	ContractorID uuid.UUID `json:"contractor_id" binding:"required"`
	Event        string    `json:"event" binding:"required,oneof=delivered bounced opened clicked"`
}

func (r DeliveryCallbackRequest) ToEvent() commands.DeliveryEvent {
	return commands.DeliveryEvent{
		CampaignID:   r.CampaignID,
		ContractorID: r.ContractorID,
		Event:        r.Event,
	}
}
