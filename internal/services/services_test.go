package services

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func fileNamed(name string) interface{} {
	return mock.MatchedBy(func(f *multipart.FileHeader) bool { return f.Filename == name })
}

// uploaderFor expects one upload per name, each returning "https://img/<name>".
func uploaderFor(names ...string) *mockUploader {
	m := &mockUploader{}
	for _, name := range names {
		m.On("Upload", mock.Anything, fileNamed(name)).Return("https://img/"+name, nil).Once()
	}
	return m
}

var hotelAdmin = &helpers.Identity{Role: helpers.RoleAdmin, ID: "admin-1"}

func guest(id string) *helpers.Identity {
	return &helpers.Identity{Role: helpers.RoleUser, ID: id}
}

func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func hotelInput(urls ...string) *models.HotelInput {
	return &models.HotelInput{
		Name:          "Seaside",
		City:          "Accra",
		Country:       "Ghana",
		Description:   "By the sea",
		Type:          "Resort",
		PricePerNight: floatPtr(120),
		AdultCount:    intPtr(2),
		ChildCount:    intPtr(1),
		StarRating:    intPtr(4),
		Facilities:    []string{"wifi", "pool"},
		ImageURLs:     models.URLList(urls),
	}
}

func requireKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperrors.KindOf(err), "unexpected error: %v", err)
}

func newTokens() *helpers.TokenManager {
	return helpers.NewTokenManager("test-secret", time.Hour)
}
