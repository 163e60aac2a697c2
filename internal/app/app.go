package app

import (
	"context"
	"errors"
	"fmt"

	"guzo_backend/internal/cache"
	"guzo_backend/internal/config"
	"guzo_backend/internal/database"
	"guzo_backend/internal/email"
	"guzo_backend/internal/handlers"
	"guzo_backend/internal/logger"
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/models"
	"guzo_backend/internal/routes"
	"guzo_backend/internal/services"
	"guzo_backend/internal/validator"
	"guzo_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}
	logger.Info("AutoMigrate completed")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokenWorker := workers.NewTokenWorker(gormDB)
	tokenWorker.Start(ctx)
	logger.Info("Token cleanup worker started")

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	redisCache, err := cache.New(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	if redisCache == nil {
		logger.Warn("Redis cache disabled, explore aggregates are computed per request")
	}

	emailService := newEmailProvider(cfg)

	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(cfg, emailService, redisCache)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB, serviceContainer)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return &MockEmailProvider{}
	}

	provider := email.NewSMTPProvider(cfg)
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, container.AuthService, container.UserService),
		UserHandler:     handlers.NewUserHandler(baseHandler, container.UserService),
		OfferingHandler: handlers.NewOfferingHandler(baseHandler, container.OfferingService, container.ExploreService),
		ExploreHandler:  handlers.NewExploreHandler(baseHandler, container.ExploreService, container.OfferingService),
		BookingHandler:  handlers.NewBookingHandler(baseHandler, container.BookingService),
		PaymentHandler:  handlers.NewPaymentHandler(baseHandler, container.PaymentService),
	}
}

func initializeGinRouter(db *gorm.DB, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.LocaleMiddleware(container.Bundle, container.Formatter))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		FirstName:    "Admin",
		IsVerified:   true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit admin seed: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
