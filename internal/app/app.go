package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Arbaj2004/Smart-Learn/database"
	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/config"
	"github.com/Arbaj2004/Smart-Learn/internal/email"
	"github.com/Arbaj2004/Smart-Learn/internal/handlers"
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/middleware"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/routes"
	"github.com/Arbaj2004/Smart-Learn/internal/services"
	"github.com/Arbaj2004/Smart-Learn/internal/storage"
	"github.com/Arbaj2004/Smart-Learn/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg.Database.DSN)
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
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	emailProvider := email.NewProvider(cfg)

	container := services.NewServiceContainer(gormDB, cfg, tokenManager, emailProvider, storageInstance)

	requireAuth := middleware.AuthMiddleware(tokenManager, container.UserRepo)
	appHandlers := handlers.NewAppHandlers(
		container,
		validator.New(),
		requireAuth,
		tokenManager.TTL(),
		cfg.Upload.MaxSize,
	)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		ginRouter.Static("/files", cfg.Storage.BasePath)
	}

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

// seedFirstAdmin creates the bootstrap admin account on an empty
// installation. Admins cannot be created through signup, so without
// this the admin surface would be unreachable.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("First admin credentials not configured, skipping seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	if _, err := userRepo.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return nil
	} else if err != repositories.ErrNotFound {
		return err
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	if err := profileRepo.CreateAdmin(&models.AdminProfile{UserID: admin.ID}); err != nil {
		return err
	}

	logger.Info("First admin user seeded", "email", cfg.FirstAdminEmail)
	return nil
}
