package handlers

import (
	"glowbook/services/booking"
	"glowbook/services/gallery"
	"glowbook/services/provider"
	"glowbook/services/service"
	"glowbook/services/storage"
	"glowbook/services/user"
)

// HandlerBundle groups all endpoint handlers and their dependencies.
type HandlerBundle struct {
	Files storage.FileStore

	Users     user.UserService
	Providers provider.ProviderService
	Catalog   service.ServiceCatalog
	Bookings  booking.BookingService
	Gallery   gallery.GalleryService
}
