package payment

import (
	"context"

	"propmart/models"
)

// ReconciliationEngine applies payment events from any channel against the
// payment state machine and, on completion, settles the associated invoice.
type ReconciliationEngine interface {
	// ApplyOutcome routes an asynchronous channel outcome, correlated by
	// reference. Duplicate deliveries against a terminal payment are no-ops.
	ApplyOutcome(ctx context.Context, reference string, outcome models.PaymentOutcome) error
	// Verify is the admin confirmation path for any channel.
	Verify(ctx context.Context, paymentID, adminID, note string) error
	// Reject is the admin rejection path; the invoice is left untouched.
	Reject(ctx context.Context, paymentID, adminID, reason string) error
}

// PushRequest is the buyer's input to initiate a mobile-money push payment.
type PushRequest struct {
	OfferID string  `json:"offerId"`
	BuyerID string  `json:"buyerId"`
	Phone   string  `json:"phone"`
	Amount  float64 `json:"amount"`
}

// ProofRequest is the buyer's input when submitting bank-transfer proof.
type ProofRequest struct {
	OfferID  string  `json:"offerId"`
	BuyerID  string  `json:"buyerId"`
	Amount   float64 `json:"amount"`
	ProofRef string  `json:"proofRef"`
	Note     string  `json:"note,omitempty"`
}

// Processor is the external mobile-money payment API: invoked once to
// initiate, then silent until its callback arrives at the webhook.
type Processor interface {
	Initiate(ctx context.Context, reference, phone string, amount float64, callbackURL string) error
}
