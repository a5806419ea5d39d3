package models

import "time"

// Payment channels.
const (
	PaymentMethodEcoCash      = "ecocash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment statuses. Completed, failed and cancelled are terminal.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Payment represents one attempt, via one channel, to settle an invoice.
type Payment struct {
	ID      string `bson:"id" json:"id"`
	OfferID string `bson:"offer_id" json:"offer_id"`
	BuyerID string `bson:"buyer_id" json:"buyer_id"`

	Method   string  `bson:"method" json:"method"`
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
	Status   string  `bson:"status" json:"status"`

	// Reference is the channel correlation id: the transaction id handed to
	// EcoCash, or the free-text proof reference for a bank transfer.
	Reference string `bson:"reference" json:"reference"`

	// GatewayResponse accumulates channel facts. New facts are merged in,
	// never overwritten wholesale.
	GatewayResponse map[string]any `bson:"gateway_response,omitempty" json:"gateway_response,omitempty"`

	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the payment has left pending. Once terminal,
// no channel event may alter its status.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCompleted ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusCancelled
}

// IsValidPaymentTransition checks if a status transition is allowed.
func IsValidPaymentTransition(from, to string) bool {
	if from != PaymentStatusPending {
		// No transitions allowed from terminal states.
		return false
	}
	switch to {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// PaymentOutcome is the canonical form of a channel callback or submission,
// produced by a channel adapter and consumed by the reconciliation engine.
type PaymentOutcome struct {
	Reference    string         `json:"reference"`
	Status       string         `json:"status"`
	Amount       float64        `json:"amount"`
	ChannelFacts map[string]any `json:"channel_facts,omitempty"`
}
