package models

import "time"

// Notification audiences.
const (
	AudienceBuyer = "buyer"
	AudienceAdmin = "admin"
)

// Notification event types.
const (
	EventOfferSubmitted   = "offer_submitted"
	EventOfferDecided     = "offer_decided"
	EventPaymentSubmitted = "payment_submitted"
	EventPaymentVerified  = "payment_verified"
	EventPaymentFailed    = "payment_failed"
)

// Notification is a persisted record of one message attempted to one recipient.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	BuyerID   string         `bson:"buyer_id,omitempty" json:"buyer_id,omitempty"`
	Recipient string         `bson:"recipient" json:"recipient"` // FCM token
	Audience  string         `bson:"audience" json:"audience"`
	Type      string         `bson:"type" json:"type"`
	Title     string         `bson:"title" json:"title"`
	Body      string         `bson:"body" json:"body"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Sent      bool           `bson:"sent" json:"sent"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}
