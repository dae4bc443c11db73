package models

import "time"

// GalleryImage is a portfolio image uploaded by a service provider.
type GalleryImage struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Filename   string    `bson:"filename" json:"filename"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
