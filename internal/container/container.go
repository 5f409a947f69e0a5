package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/hotelbay/internal/config"
	"github.com/joshua-takyi/hotelbay/internal/connect"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	Tokens        *helpers.TokenManager

	AuthService    *services.AuthService
	HotelService   *services.HotelService
	BookingService *services.BookingService

	AdminVerifier services.IdentityVerifier
	UserVerifier  services.IdentityVerifier
}

// NewContainer connects to MongoDB and Cloudinary and wires every service.
// Call Close when done.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	cld, err := connect.CloudinaryCredentials(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}

	client, err := connect.MongoDBConnect(ctx, cfg.MongoDBURI, cfg.MongoDBPassword)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBName)

	repo := models.MongodbNewRepo(client, cfg.MongoDBName)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = connect.MongoDBDisconnect(ctx, client)
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	tokens := helpers.NewTokenManager(cfg.JWTSecretKey, cfg.TokenTTL)
	uploader := helpers.NewCloudinaryUploader(cld, helpers.HotelFolder)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		MongoDBClient:  client,
		Tokens:         tokens,
		AuthService:    services.NewAuthService(repo, tokens, cfg.AllowAdminRegistration, logger),
		HotelService:   services.NewHotelService(repo, uploader, logger),
		BookingService: services.NewBookingService(repo, repo, logger),
		AdminVerifier:  services.NewAdminVerifier(tokens, repo),
		UserVerifier:   services.NewUserVerifier(tokens),
	}, nil
}

// Close releases the database connection.
func (c *Container) Close(ctx context.Context) error {
	return connect.MongoDBDisconnect(ctx, c.MongoDBClient)
}
