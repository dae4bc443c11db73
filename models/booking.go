package models

import "time"

// Booking statuses. cancelled and completed are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking represents a reserved time slot with a provider.
type Booking struct {
	ID              string    `bson:"id" json:"id"`                             // Unique booking identifier (UUID)
	ClientID        string    `bson:"client_id" json:"client_id"`               // User who made the booking
	ProviderID      string    `bson:"provider_id" json:"provider_id"`           // Provider who was booked
	ServiceID       string    `bson:"service_id" json:"service_id"`             // Service being booked
	Start           time.Time `bson:"start" json:"start"`                       // Slot start instant
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"` // Snapshot of the service duration at booking time
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// End returns the exclusive end of the booking's interval.
func (b Booking) End() time.Time {
	return b.Start.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
