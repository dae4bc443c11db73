package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowbook/config"
	"glowbook/database"
	bookingRepoPkg "glowbook/database/repository/booking"
	galleryRepoPkg "glowbook/database/repository/gallery"
	providerRepoPkg "glowbook/database/repository/provider"
	serviceRepoPkg "glowbook/database/repository/service"
	userRepoPkg "glowbook/database/repository/user"
	"glowbook/handlers"
	"glowbook/routes"
	"glowbook/services/auth"
	"glowbook/services/booking"
	"glowbook/services/gallery"
	"glowbook/services/provider"
	"glowbook/services/service"
	"glowbook/services/storage"
	"glowbook/services/user"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	fileStore, err := newFileStore()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize file storage: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	svcRepo := serviceRepoPkg.NewMongoServiceRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()
	galRepo := galleryRepoPkg.NewMongoGalleryRepo()

	// services.
	tokens := auth.NewTokenService(config.AppConfig.JWTSecret)

	userService := &user.DefaultUserService{
		Repo:         userRepo,
		ProviderRepo: provRepo,
		Tokens:       tokens,
	}
	providerService := &provider.DefaultProviderService{
		Repo:     provRepo,
		UserRepo: userRepo,
	}
	catalog := &service.DefaultServiceCatalog{
		Repo: svcRepo,
	}
	bookingService := booking.NewDefaultBookingService(bkRepo, svcRepo)
	galleryService := gallery.NewDefaultGalleryService(galRepo, fileStore)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Files:     fileStore,
		Users:     userService,
		Providers: providerService,
		Catalog:   catalog,
		Bookings:  bookingService,
		Gallery:   galleryService,
	}

	// Only local storage serves files from /uploads.
	uploadDir := ""
	if _, ok := fileStore.(*storage.LocalFileStore); ok {
		uploadDir = config.AppConfig.UploadDir
	}

	routes.RegisterRoutes(router, handlerBundle, tokens, config.AppConfig.MaxRequestsPerMin, uploadDir)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newFileStore picks Cloudinary when credentials are configured, local disk
// otherwise.
func newFileStore() (storage.FileStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		return storage.NewCloudinaryFileStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "glowbook")
	}
	return storage.NewLocalFileStore(cfg.UploadDir)
}
