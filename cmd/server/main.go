package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/config"
	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/server"
	"github.com/unlockedcoding/backend/pkg/database"
	"github.com/unlockedcoding/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(database.Options{
		DSN:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.New(cfg, db, redisClient)

	zapLogger.Info("server starting", zap.String("port", cfg.Port))
	if err := srv.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server exited with error", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Review{},
		&model.ContactSubmission{},
		&model.Session{},
	)
}
