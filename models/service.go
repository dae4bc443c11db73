package models

import "time"

// Service is a bookable offering owned by a service provider.
// DurationMinutes drives interval computation for new bookings; existing
// bookings keep the duration snapshotted at creation time.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"provider_id" json:"provider_id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	CalendarColor   string    `bson:"calendar_color,omitempty" json:"calendar_color,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
