package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"socialhub_backend/database"
	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/config"
	"socialhub_backend/internal/handlers"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/middleware"
	"socialhub_backend/internal/models"
	"socialhub_backend/internal/repositories"
	"socialhub_backend/internal/routes"
	"socialhub_backend/internal/services"
	"socialhub_backend/internal/validator"
	"socialhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run serves HTTP until SIGINT/SIGTERM.
func Run(cfg *config.Config) error {
	gormDB, err := connect(cfg)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(gormDB); err != nil {
		return err
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Migrate applies the schema and exits.
func Migrate(cfg *config.Config) error {
	gormDB, err := connect(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		return err
	}
	logger.Info("Migrations applied", "driver", cfg.Database.Driver)
	return nil
}

func connect(cfg *config.Config) (*gorm.DB, error) {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")
	return gormDB, nil
}

// SetupRouter builds the full gin engine. Tests call it with an in-memory database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.Server.Env == "development")

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.AccessTTL(), cfg.RefreshTTL())

	serviceContainer := initializeServices(cfg, tokens)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, tokens)

	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	friendRequestRepo := repositories.NewFriendRequestRepository()
	friendshipRepo := repositories.NewFriendshipRepository()
	notificationRepo := repositories.NewNotificationRepository()

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, tokens)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, cfg.Notifications.ListLimit)
	friendService := services.NewFriendService(friendRequestRepo, friendshipRepo, userRepo, userService, notificationService)

	return &services.ServiceContainer{
		UserService:         userService,
		AuthService:         authService,
		FriendService:       friendService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		FriendHandler:       handlers.NewFriendHandler(baseHandler, services.FriendService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the configured staff account once. An existing user
// with that email is left untouched.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := models.NormalizeEmail(cfg.FirstAdminEmail)
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", adminEmail).First(&existing).Error
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		if err := auth.ValidatePassword(adminPassword); err != nil {
			return fmt.Errorf("first admin password: %w", err)
		}
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: hash,
			FullName:     "Administrator",
			IsStaff:      true,
			IsActive:     true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail, "user_id", admin.ID)
		return nil
	})
}
