package booking

import (
	"time"

	"glowbook/models"
	"glowbook/services/auth"
)

// CreateRequest carries the fields a client submits to reserve a slot.
type CreateRequest struct {
	ServiceID  string    `json:"service_id"`
	ProviderID string    `json:"provider_id"`
	Start      time.Time `json:"date"`
	Status     string    `json:"status,omitempty"` // Optional initial status; defaults to pending
}

// UpdateRequest carries the mutable booking fields. Nil means "leave
// unchanged"; setting both reschedules and transitions in one write.
type UpdateRequest struct {
	Start  *time.Time
	Status *string
}

// BookingService orchestrates the booking lifecycle: admission-checked
// creation and reschedule, status transitions, and deletion.
type BookingService interface {
	// Create admits and persists a new booking for a client identity.
	Create(ident auth.Claims, req CreateRequest) (*models.Booking, error)
	// Update reschedules a booking and/or transitions its status.
	Update(ident auth.Claims, bookingID string, req UpdateRequest) (*models.Booking, error)
	// Delete removes a booking and its dependent records.
	Delete(ident auth.Claims, bookingID string) error
	// Get retrieves a single booking visible to the identity.
	Get(ident auth.Claims, bookingID string) (*models.Booking, error)
	// List retrieves bookings, scoped to what the identity may see.
	List(ident auth.Claims, clientID, providerID string) ([]models.Booking, error)
}
