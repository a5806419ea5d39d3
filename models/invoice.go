package models

import "time"

// Invoice statuses. PartiallyPaid is reserved: the settlement model is
// full-settlement, the first completed payment clears the invoice.
const (
	InvoiceStatusUnpaid        = "unpaid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
)

// InvoiceLineItem is a single line within an invoice. Line items are an
// immutable snapshot of what is owed at issue time.
type InvoiceLineItem struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// InvoiceSnapshot captures offer/property/buyer facts at issue time.
// It is denormalized for display and never refreshed, even if the source
// records change later.
type InvoiceSnapshot struct {
	OfferReference string  `bson:"offer_reference" json:"offer_reference"`
	BuyerID        string  `bson:"buyer_id" json:"buyer_id"`
	BuyerName      string  `bson:"buyer_name" json:"buyer_name"`
	PropertyID     string  `bson:"property_id" json:"property_id"`
	OfferPrice     float64 `bson:"offer_price" json:"offer_price"`
	PaymentMethod  string  `bson:"payment_method" json:"payment_method"`
}

// Invoice represents the amount currently owed against an approved offer.
type Invoice struct {
	ID      string `bson:"id" json:"id"`
	OfferID string `bson:"offer_id" json:"offer_id"`

	Currency  string            `bson:"currency" json:"currency"`
	Subtotal  float64           `bson:"subtotal" json:"subtotal"`
	Tax       float64           `bson:"tax" json:"tax"`
	Total     float64           `bson:"total" json:"total"`
	AmountDue float64           `bson:"amount_due" json:"amount_due"`
	Status    string            `bson:"status" json:"status"`
	LineItems []InvoiceLineItem `bson:"line_items" json:"line_items"`
	Snapshot  InvoiceSnapshot   `bson:"snapshot" json:"snapshot"`

	IssuedAt  time.Time `bson:"issued_at" json:"issued_at"`
	DueAt     time.Time `bson:"due_at" json:"due_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
