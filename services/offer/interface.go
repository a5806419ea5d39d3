package offer

import (
	"context"

	"propmart/models"
)

// Decisions an admin can take on a pending offer.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Draft is the buyer's input for a new offer.
type Draft struct {
	BuyerID       string  `json:"buyerId"`
	SellerID      string  `json:"sellerId"`
	PropertyID    string  `json:"propertyId"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"depositAmount,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
}

// LifecycleService owns offer transitions: submission, and the admin
// approve/reject decision that spawns an invoice on approval.
type LifecycleService interface {
	Submit(ctx context.Context, draft Draft) (*models.Offer, error)
	// Decide applies an approve/reject decision. On approval the invoice is
	// issued synchronously before Decide returns; the issued invoice rides
	// along in the response.
	Decide(ctx context.Context, offerID, decision, reviewerID, reason string) (*models.Offer, *models.Invoice, error)
	Get(ctx context.Context, offerID string) (*models.Offer, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]models.Offer, error)
}
