package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/models/modelstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) *models.RegisterInput {
	return &models.RegisterInput{
		Email:     email,
		Password:  "secret123",
		FirstName: "Ama",
		LastName:  "Mensah",
	}
}

func TestAdminAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("registration disabled", func(t *testing.T) {
		svc := NewAuthService(modelstest.NewStore(), newTokens(), false, discardLogger())
		_, _, err := svc.RegisterAdmin(ctx, registerInput("admin@example.com"))
		requireKind(t, err, apperrors.KindForbidden)
	})

	t.Run("register then login", func(t *testing.T) {
		tokens := newTokens()
		svc := NewAuthService(modelstest.NewStore(), tokens, true, discardLogger())

		token, admin, err := svc.RegisterAdmin(ctx, registerInput("Admin@Example.com"))
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", admin.Email)
		assert.NotEqual(t, "secret123", admin.Password)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, helpers.RoleAdmin, claims.Role)
		assert.Equal(t, admin.ID.Hex(), claims.Subject)

		_, _, err = svc.RegisterAdmin(ctx, registerInput("admin@example.com"))
		requireKind(t, err, apperrors.KindValidation)
		assert.Equal(t, "Admin already exists", apperrors.MessageOf(err))

		token, _, err = svc.LoginAdmin(ctx, &models.LoginInput{Email: "admin@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, _, err = svc.LoginAdmin(ctx, &models.LoginInput{Email: "admin@example.com", Password: "wrong-password"})
		requireKind(t, err, apperrors.KindValidation)
		assert.Equal(t, "Invalid Credentials", apperrors.MessageOf(err))

		_, _, err = svc.LoginAdmin(ctx, &models.LoginInput{Email: "ghost@example.com", Password: "secret123"})
		requireKind(t, err, apperrors.KindValidation)

		got, err := svc.GetAdmin(ctx, admin.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, admin.Email, got.Email)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := NewAuthService(modelstest.NewStore(), newTokens(), true, discardLogger())
		in := registerInput("not-an-email")
		in.Password = "123"
		_, err := svc.CreateAdmin(ctx, in)
		requireKind(t, err, apperrors.KindValidation)
		assert.Contains(t, apperrors.MessageOf(err), "email must be a valid email")
		assert.Contains(t, apperrors.MessageOf(err), "password must be at least 6 characters")
	})

	t.Run("store failure", func(t *testing.T) {
		store := modelstest.NewStore()
		store.Err = errors.New("no primary")
		svc := NewAuthService(store, newTokens(), true, discardLogger())
		_, _, err := svc.LoginAdmin(ctx, &models.LoginInput{Email: "admin@example.com", Password: "secret123"})
		requireKind(t, err, apperrors.KindDependency)
	})
}

func TestUserAuth(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens()
	svc := NewAuthService(modelstest.NewStore(), tokens, false, discardLogger())

	token, user, err := svc.RegisterUser(ctx, registerInput("guest@example.com"))
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, helpers.RoleUser, claims.Role)
	assert.Equal(t, user.ID.Hex(), claims.Subject)

	_, _, err = svc.RegisterUser(ctx, registerInput("guest@example.com"))
	requireKind(t, err, apperrors.KindValidation)
	assert.Equal(t, "User already exists", apperrors.MessageOf(err))

	_, got, err := svc.LoginUser(ctx, &models.LoginInput{Email: "GUEST@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, _, err = svc.LoginUser(ctx, &models.LoginInput{Email: "guest@example.com", Password: "nope-nope"})
	requireKind(t, err, apperrors.KindValidation)
}

func TestAuthorizationGate(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens()
	store := modelstest.NewStore()
	svc := NewAuthService(store, tokens, true, discardLogger())
	adminGate := NewAdminVerifier(tokens, store)
	userGate := NewUserVerifier(tokens)

	adminToken, admin, err := svc.RegisterAdmin(ctx, registerInput("admin@example.com"))
	require.NoError(t, err)
	userToken, user, err := svc.RegisterUser(ctx, registerInput("guest@example.com"))
	require.NoError(t, err)

	id, err := adminGate.Verify(ctx, adminToken)
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, admin.ID.Hex(), id.ID)

	id, err = userGate.Verify(ctx, userToken)
	require.NoError(t, err)
	assert.True(t, id.IsUser())
	assert.Equal(t, user.ID.Hex(), id.ID)

	t.Run("role mismatch", func(t *testing.T) {
		_, err := adminGate.Verify(ctx, userToken)
		requireKind(t, err, apperrors.KindUnauthorized)
		_, err = userGate.Verify(ctx, adminToken)
		requireKind(t, err, apperrors.KindUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := adminGate.Verify(ctx, "garbage")
		requireKind(t, err, apperrors.KindUnauthorized)
		assert.Equal(t, "Unauthorized access", apperrors.MessageOf(err))
		_, err = userGate.Verify(ctx, "")
		requireKind(t, err, apperrors.KindUnauthorized)
	})

	t.Run("deleted user keeps access until expiry", func(t *testing.T) {
		store.DeleteUser(user.ID)
		_, err := userGate.Verify(ctx, userToken)
		require.NoError(t, err)
	})

	t.Run("deleted admin is rejected", func(t *testing.T) {
		store.DeleteAdmin(admin.ID)
		_, err := adminGate.Verify(ctx, adminToken)
		requireKind(t, err, apperrors.KindUnauthorized)
	})

	t.Run("store failure during admin lookup", func(t *testing.T) {
		broken := modelstest.NewStore()
		broken.Err = errors.New("no primary")
		_, err := NewAdminVerifier(tokens, broken).Verify(ctx, adminToken)
		requireKind(t, err, apperrors.KindDependency)
	})
}
