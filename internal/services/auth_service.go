package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
)

const (
	errInvalidCredentials = "Invalid Credentials"

	// MsgAdminExists is returned when an admin email is already registered.
	MsgAdminExists = "Admin already exists"
)

// AuthService handles sign-in and sign-up for both account kinds.
type AuthService struct {
	accounts               models.AccountRepo
	tokens                 *helpers.TokenManager
	allowAdminRegistration bool
	logger                 *slog.Logger
}

func NewAuthService(accounts models.AccountRepo, tokens *helpers.TokenManager, allowAdminRegistration bool, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts:               accounts,
		tokens:                 tokens,
		allowAdminRegistration: allowAdminRegistration,
		logger:                 logger,
	}
}

func (as *AuthService) LoginAdmin(ctx context.Context, in *models.LoginInput) (string, *models.Admin, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	admin, err := as.accounts.FindAdminByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, apperrors.Validation(errInvalidCredentials)
		}
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}
	if err := helpers.VerifyPassword(admin.Password, in.Password); err != nil {
		return "", nil, apperrors.Validation(errInvalidCredentials)
	}

	token, err := as.tokens.Issue(helpers.RoleAdmin, admin.ID.Hex())
	if err != nil {
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}
	return token, admin, nil
}

// RegisterAdmin is only available when admin registration is enabled in config.
func (as *AuthService) RegisterAdmin(ctx context.Context, in *models.RegisterInput) (string, *models.Admin, error) {
	if !as.allowAdminRegistration {
		return "", nil, apperrors.Forbidden("Admin registration is disabled")
	}

	admin, err := as.CreateAdmin(ctx, in)
	if err != nil {
		return "", nil, err
	}

	token, err := as.tokens.Issue(helpers.RoleAdmin, admin.ID.Hex())
	if err != nil {
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}
	return token, admin, nil
}

// CreateAdmin stores a new admin regardless of the registration switch. It
// backs RegisterAdmin and the seed command.
func (as *AuthService) CreateAdmin(ctx context.Context, in *models.RegisterInput) (*models.Admin, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hashed, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Dependency("Something went wrong", err)
	}

	admin, err := as.accounts.CreateAdmin(ctx, &models.Admin{
		Email:     in.Email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      string(helpers.RoleAdmin),
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, apperrors.Validation(MsgAdminExists)
		}
		return nil, apperrors.Dependency("Something went wrong", err)
	}

	as.logger.Info("Admin registered", "admin_id", admin.ID.Hex())
	return admin, nil
}

func (as *AuthService) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := as.accounts.FindAdminByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Admin not found", "Something went wrong")
	}
	return admin, nil
}

func (as *AuthService) RegisterUser(ctx context.Context, in *models.RegisterInput) (string, *models.User, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	hashed, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}

	user, err := as.accounts.CreateUser(ctx, &models.User{
		Email:     in.Email,
		Password:  hashed,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return "", nil, apperrors.Validation("User already exists")
		}
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}

	token, err := as.tokens.Issue(helpers.RoleUser, user.ID.Hex())
	if err != nil {
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}

	as.logger.Info("User registered", "user_id", user.ID.Hex())
	return token, user, nil
}

func (as *AuthService) LoginUser(ctx context.Context, in *models.LoginInput) (string, *models.User, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	user, err := as.accounts.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, apperrors.Validation(errInvalidCredentials)
		}
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}
	if err := helpers.VerifyPassword(user.Password, in.Password); err != nil {
		return "", nil, apperrors.Validation(errInvalidCredentials)
	}

	token, err := as.tokens.Issue(helpers.RoleUser, user.ID.Hex())
	if err != nil {
		return "", nil, apperrors.Dependency("Something went wrong", err)
	}
	return token, user, nil
}
