// Package send defines the EmailSend row vocabulary. Rows are created and
// mutated exclusively by the delivery pipeline; everything else reads them.
package send

type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
	StatusBounced   DeliveryStatus = "bounced"
	// StatusTest marks rows inserted by operators for smoke sends; the
	// pipeline never writes it but the schema admits it.
	StatusTest DeliveryStatus = "test"
)

// Valid mirrors the delivery_status CHECK constraint; repository writes refuse
// anything outside it before the statement reaches Postgres.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusDelivered, StatusFailed, StatusBounced, StatusTest:
		return true
	}
	return false
}
