package models

import "time"

// ServiceProvider is the professional profile attached to a SERVICE_PROVIDER user.
type ServiceProvider struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Ethnicity       string    `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	HairColor       string    `bson:"hair_color,omitempty" json:"hair_color,omitempty"`
	ExperienceYears *int      `bson:"experience_years,omitempty" json:"experience_years,omitempty"`
	Certifications  string    `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Specialties     string    `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Address         string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
