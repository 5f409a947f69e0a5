package services

import (
	"context"
	"errors"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
)

// IdentityVerifier resolves a session token into a caller identity. Every
// token problem is reported as Unauthorized.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*helpers.Identity, error)
}

type AdminFinder interface {
	FindAdminByID(ctx context.Context, id string) (*models.Admin, error)
}

// AdminVerifier accepts admin tokens whose admin still exists in the store.
type AdminVerifier struct {
	tokens *helpers.TokenManager
	admins AdminFinder
}

func NewAdminVerifier(tokens *helpers.TokenManager, admins AdminFinder) *AdminVerifier {
	return &AdminVerifier{tokens: tokens, admins: admins}
}

func (av *AdminVerifier) Verify(ctx context.Context, token string) (*helpers.Identity, error) {
	claims, err := verifyRole(av.tokens, token, helpers.RoleAdmin)
	if err != nil {
		return nil, err
	}

	admin, err := av.admins.FindAdminByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, unauthorized(err)
		}
		return nil, apperrors.Dependency("Error verifying admin", err)
	}

	return &helpers.Identity{Role: helpers.RoleAdmin, ID: admin.ID.Hex()}, nil
}

// UserVerifier trusts the token's claims without a store lookup, so a deleted
// user's token keeps working until it expires.
type UserVerifier struct {
	tokens *helpers.TokenManager
}

func NewUserVerifier(tokens *helpers.TokenManager) *UserVerifier {
	return &UserVerifier{tokens: tokens}
}

func (uv *UserVerifier) Verify(_ context.Context, token string) (*helpers.Identity, error) {
	claims, err := verifyRole(uv.tokens, token, helpers.RoleUser)
	if err != nil {
		return nil, err
	}
	return &helpers.Identity{Role: helpers.RoleUser, ID: claims.Subject}, nil
}

func verifyRole(tokens *helpers.TokenManager, token string, role helpers.Role) (*helpers.SessionClaims, error) {
	claims, err := tokens.Verify(token)
	if err != nil {
		return nil, unauthorized(err)
	}
	if claims.Role != role {
		return nil, unauthorized(errors.New("token role mismatch"))
	}
	return claims, nil
}

func unauthorized(cause error) error {
	return &apperrors.Error{
		Kind:    apperrors.KindUnauthorized,
		Message: "Unauthorized access",
		Err:     cause,
	}
}
