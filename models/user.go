package models

import "time"

// Role values carried in identity claims and stored on users.
const (
	RoleClient          = "CLIENT"
	RoleServiceProvider = "SERVICE_PROVIDER"
	RoleAdmin           = "ADMIN"
)

// User represents a platform account (client, service provider, or admin).
type User struct {
	ID           string     `bson:"id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Name         string     `bson:"name" json:"name"`
	Role         string     `bson:"role" json:"role"`
	DateOfBirth  *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileColor string     `bson:"profile_color" json:"profile_color"`
	ProfileImage string     `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Status       string     `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}
