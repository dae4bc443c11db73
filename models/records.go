package models

import "time"

// Payment is a settlement record owned by a booking. The platform does not
// process payments; these records exist so account deletion can cascade.
type Payment struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	ClientID   string    `bson:"client_id" json:"client_id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Amount     float64   `bson:"amount" json:"amount"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// FavoriteProvider links a client to a provider they bookmarked.
type FavoriteProvider struct {
	ID         string    `bson:"id" json:"id"`
	ClientID   string    `bson:"client_id" json:"client_id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
