package routes

import (
	"net/http"
	"time"

	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the authentication endpoints. Signup and
// login are public; minting admins requires an authenticated admin.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.POST("/signup/client", hb.SignupClientHandler)
		api.POST("/signup/service-provider", hb.SignupProviderHandler)
		api.POST("/signup/admin", middleware.AuthRequired(tokens), hb.SignupAdminHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints. All of them require
// an authenticated caller.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthRequired(tokens))
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id", hb.UpdateBookingHandler)
		api.DELETE("/:id", hb.DeleteBookingHandler)
	}
}

// RegisterServiceRoutes registers the service catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/services")
	{
		api.Use(middleware.AuthRequired(tokens))
		api.GET("", hb.ListServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)
		api.POST("", hb.CreateServiceHandler)
		api.PUT("/:id", hb.UpdateServiceHandler)
		api.DELETE("/:id", hb.DeleteServiceHandler)
	}
}

// RegisterGalleryRoutes registers the provider gallery endpoints.
func RegisterGalleryRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/gallery-images")
	{
		api.Use(middleware.AuthRequired(tokens))
		api.GET("", hb.ListGalleryHandler)
		api.POST("", hb.UploadGalleryImageHandler)
		api.DELETE("/:id", hb.DeleteGalleryImageHandler)
	}
}

// RegisterClientRoutes registers client account endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/clients")
	{
		api.Use(middleware.AuthRequired(tokens))
		api.GET("", hb.ListClientsHandler)
		api.GET("/:id", hb.GetClientHandler)
		api.PUT("/:id", hb.UpdateClientHandler)
		api.DELETE("/:id", hb.DeleteClientHandler)
	}
}

// RegisterProviderRoutes registers service-provider account endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService) {
	api := r.Group("/api/service-providers")
	{
		api.Use(middleware.AuthRequired(tokens))
		api.GET("", hb.ListProvidersHandler)
		api.GET("/:id", hb.GetProviderHandler)
		api.PUT("/:id", hb.UpdateProviderHandler)
		api.DELETE("/:id", hb.DeleteProviderHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// CORS runs before the auth gate so preflight requests short-circuit.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, tokens *auth.TokenService, requestsPerMin int, uploadDir string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(requestsPerMin))

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	RegisterAuthRoutes(r, hb, tokens)
	RegisterBookingRoutes(r, hb, tokens)
	RegisterServiceRoutes(r, hb, tokens)
	RegisterGalleryRoutes(r, hb, tokens)
	RegisterClientRoutes(r, hb, tokens)
	RegisterProviderRoutes(r, hb, tokens)
	RegisterHealthRoute(r)
}
