package userRepo

import (
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by their email. Returns (nil, nil) when absent.
	GetByEmail(email string) (*models.User, error)
	// ListByRole retrieves all users carrying the given role.
	ListByRole(role string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateSetDocument applies a partial $set update to a user record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// DeleteClientCascade removes a client together with their bookings,
	// payments, and favorite records in one transaction.
	DeleteClientCascade(id string) error
}
