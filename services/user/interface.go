package user

import (
	"time"

	"glowbook/models"
)

// ClientUpdate enumerates every mutable client field. Nil means "leave
// unchanged"; unknown fields are rejected at the transport layer.
type ClientUpdate struct {
	Email        *string    `json:"email"`
	Password     *string    `json:"password"`
	Name         *string    `json:"name"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Phone        *string    `json:"phone"`
	ProfileImage *string    `json:"profile_image"`
	Status       *string    `json:"status"`
}

// Registration carries the fields shared by every signup flow.
type Registration struct {
	Email        string
	Password     string
	Name         string
	DateOfBirth  *time.Time
	Phone        string
	ProfileImage string
	Status       string
}

// UserService manages account lifecycle: login and client/admin accounts.
type UserService interface {
	// Login verifies credentials and returns the account plus a signed token.
	Login(email, password string) (*models.User, string, error)
	// RegisterClient creates a CLIENT account.
	RegisterClient(reg Registration) (*models.User, error)
	// RegisterAdmin creates an ADMIN account.
	RegisterAdmin(reg Registration) (*models.User, error)
	// GetClient retrieves a client account by id.
	GetClient(id string) (*models.User, error)
	// ListClients retrieves all client accounts.
	ListClients() ([]models.User, error)
	// UpdateClient applies a partial update to a client account.
	UpdateClient(id string, update ClientUpdate) (*models.User, error)
	// DeleteClient removes a client and their dependent records.
	DeleteClient(id string) error
}
