// Command seed creates the default admin account.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/config"
	"github.com/joshua-takyi/hotelbay/internal/container"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/services"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appContainer, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := appContainer.Close(ctx); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	in := &models.RegisterInput{
		Email:     getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		Password:  getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		FirstName: getEnv("SEED_ADMIN_FIRST_NAME", "Admin"),
		LastName:  getEnv("SEED_ADMIN_LAST_NAME", "User"),
	}

	admin, err := appContainer.AuthService.CreateAdmin(ctx, in)
	switch {
	case err == nil:
		logger.Info("Default admin created", "email", admin.Email)
	case apperrors.KindOf(err) == apperrors.KindValidation && apperrors.MessageOf(err) == services.MsgAdminExists:
		logger.Info("Default admin already exists", "email", in.Email)
	default:
		logger.Error("Failed to create default admin", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
