package models

import "time"

// Offer payment method intents.
const (
	OfferMethodCash        = "cash"
	OfferMethodInstallment = "installment"
)

// Offer statuses.
const (
	OfferStatusPending  = "pending"
	OfferStatusApproved = "approved"
	OfferStatusRejected = "rejected"
	OfferStatusPaid     = "paid"
)

// Offer represents a buyer's proposal to purchase a property, cash or installment.
type Offer struct {
	ID            string `bson:"id" json:"id"`
	ReferenceCode string `bson:"reference_code" json:"reference_code"`
	BuyerID       string `bson:"buyer_id" json:"buyer_id"`
	SellerID      string `bson:"seller_id" json:"seller_id"`
	PropertyID    string `bson:"property_id" json:"property_id"`

	Price         float64 `bson:"price" json:"price"`
	DepositAmount float64 `bson:"deposit_amount,omitempty" json:"deposit_amount,omitempty"` // installment only
	PaymentMethod string  `bson:"payment_method" json:"payment_method"`

	Status          string     `bson:"status" json:"status"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	ReviewedBy      string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidOfferTransition reports whether a status transition is allowed.
// Rejection is terminal; approved offers may only move to paid.
func IsValidOfferTransition(from, to string) bool {
	switch from {
	case OfferStatusPending:
		return to == OfferStatusApproved || to == OfferStatusRejected
	case OfferStatusApproved:
		return to == OfferStatusPaid
	default:
		return false
	}
}
