package models

import "time"

// Buyer holds the contact facts the workflow needs about a buyer. The full
// profile (KYC documents, auth state) is managed elsewhere; this core only
// reads it to resolve notification recipients and snapshot invoice metadata.
type Buyer struct {
	ID          string    `bson:"id" json:"id"`
	FullName    string    `bson:"full_name" json:"full_name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number" json:"phone_number"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
