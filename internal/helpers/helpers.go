package helpers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	HotelFolder = "hotels"

	AdminCookieName = "admin_auth_token"
	UserCookieName  = "auth_token"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

func (tm *TokenManager) Issue(role Role, accountID string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("account id is required to issue a token")
	}
	now := time.Now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Every failure is reported as ErrInvalidToken
// wrapping the parser's reason.
func (tm *TokenManager) Verify(tokenStr string) (*SessionClaims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, candidate string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(candidate))
}

// CloudinaryUploader sends multipart uploads to a Cloudinary folder.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{
		cld:    cld,
		folder: folder,
	}
}

func (cu *CloudinaryUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if cu.cld == nil {
		return "", fmt.Errorf("cloudinary client is not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", file.Filename, err)
	}
	defer f.Close()

	res, err := cu.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder: cu.folder,
		Tags:   []string{"hotelbay"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", file.Filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image %s: %s", file.Filename, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("upload of %s returned no url", file.Filename)
	}

	return res.SecureURL, nil
}

// TrimID strips whitespace and surrounding quotes clients sometimes leave on ids.
func TrimID(id string) string {
	id = strings.TrimSpace(id)
	return strings.Trim(id, "\"'")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate accepts full RFC 3339 timestamps as well as plain calendar dates.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", value)
}
