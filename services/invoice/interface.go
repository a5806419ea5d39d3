package invoice

import (
	"context"

	"propmart/models"
)

// Issuer creates and reads invoices for approved offers.
type Issuer interface {
	// IssueFor computes the amount due for an approved offer and creates the
	// invoice record. If the store write fails, the in-memory invoice is still
	// returned so the approval flow is not blocked.
	IssueFor(ctx context.Context, offer *models.Offer) (*models.Invoice, error)
	LatestForOffer(ctx context.Context, offerID string) (*models.Invoice, error)
}
