package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbay/internal/config"
	"github.com/joshua-takyi/hotelbay/internal/container"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/models/modelstest"
	"github.com/joshua-takyi/hotelbay/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	return "https://img/" + file.Filename, nil
}

type testApp struct {
	router *gin.Engine
	store  *modelstest.Store
	auth   *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := modelstest.NewStore()
	tokens := helpers.NewTokenManager("route-test-secret", time.Hour)
	cfg := &config.Config{FrontendURL: "http://localhost:5173", Environment: "test", TokenTTL: time.Hour}

	c := &container.Container{
		Config:         cfg,
		Logger:         logger,
		Tokens:         tokens,
		AuthService:    services.NewAuthService(store, tokens, false, logger),
		HotelService:   services.NewHotelService(store, stubUploader{}, logger),
		BookingService: services.NewBookingService(store, store, logger),
		AdminVerifier:  services.NewAdminVerifier(tokens, store),
		UserVerifier:   services.NewUserVerifier(tokens),
	}
	return &testApp{router: SetupRoutes(c), store: store, auth: c.AuthService}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			require.True(t, ck.HttpOnly)
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Total   int             `json:"total"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *testApp) adminSession(t *testing.T) *http.Cookie {
	t.Helper()
	_, err := a.auth.CreateAdmin(context.Background(), &models.RegisterInput{
		Email: "admin@example.com", Password: "admin123", FirstName: "Admin", LastName: "User",
	})
	require.NoError(t, err)

	w := a.do(jsonRequest(http.MethodPost, "/api/v1/admin/login", gin.H{"email": "admin@example.com", "password": "admin123"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionFrom(t, w, helpers.AdminCookieName)
}

func (a *testApp) userSession(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := a.do(jsonRequest(http.MethodPost, "/api/v1/users/register", gin.H{
		"email": email, "password": "secret123", "firstName": "Kofi", "lastName": "Boateng",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return sessionFrom(t, w, helpers.UserCookieName)
}

func hotelForm(t *testing.T, files ...string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := [][2]string{
		{"name", "Seaside"}, {"city", "Accra"}, {"country", "Ghana"},
		{"description", "By the sea"}, {"type", "Resort"},
		{"pricePerNight", "120"}, {"adultCount", "2"}, {"childCount", "1"},
		{"starRating", "4"}, {"facilities", "wifi"}, {"facilities", "pool"},
	}
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	for _, name := range files {
		fw, err := mw.CreateFormFile("imageFiles", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func (a *testApp) createHotel(t *testing.T, admin *http.Cookie) models.Hotel {
	t.Helper()
	body, contentType := hotelForm(t, "a.jpg", "b.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/hotels", body)
	req.Header.Set("Content-Type", contentType)
	w := a.do(req, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var hotel models.Hotel
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &hotel))
	return hotel
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotelbay-api")
}

func TestAdminHotelRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminSession(t)

	hotel := app.createHotel(t, admin)
	assert.Equal(t, []string{"https://img/a.jpg", "https://img/b.jpg"}, hotel.ImageURLs)
	assert.Equal(t, []string{"wifi", "pool"}, hotel.Facilities)
	assert.Equal(t, 4, hotel.StarRating)

	t.Run("json update keeps owner", func(t *testing.T) {
		w := app.do(jsonRequest(http.MethodPut, "/api/v1/admin/hotels/"+hotel.ID.Hex(), gin.H{
			"name": "Seaside Deluxe", "city": "Accra", "country": "Ghana",
			"description": "By the sea", "type": "Resort",
			"pricePerNight": 150, "adultCount": 2, "childCount": 1, "starRating": 5,
			"facilities": []string{"wifi"}, "imageUrls": "https://img/a.jpg",
			"userId": "someone-else",
		}), admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated models.Hotel
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
		assert.Equal(t, "Seaside Deluxe", updated.Name)
		assert.Equal(t, []string{"https://img/a.jpg"}, updated.ImageURLs)
		assert.Equal(t, hotel.UserID, updated.UserID)
	})

	t.Run("create without images", func(t *testing.T) {
		body, contentType := hotelForm(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/hotels", body)
		req.Header.Set("Content-Type", contentType)
		w := app.do(req, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "At least one image is required", decode(t, w).Error)
	})

	t.Run("list and public get", func(t *testing.T) {
		w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/hotels", nil), admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode(t, w).Total)

		w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/hotels/"+hotel.ID.Hex(), nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/hotels/not-an-id", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := app.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/hotels/"+hotel.ID.Hex(), nil), admin)
		require.Equal(t, http.StatusOK, w.Code)
		w = app.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/hotels/"+hotel.ID.Hex(), nil), admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminGate(t *testing.T) {
	app := newTestApp(t)
	user := app.userSession(t, "guest@example.com")

	w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/hotels", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a user token presented as the admin cookie
	forged := &http.Cookie{Name: helpers.AdminCookieName, Value: user.Value}
	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/hotels", nil), forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(jsonRequest(http.MethodPost, "/api/v1/admin/register", gin.H{
		"email": "new@example.com", "password": "secret123", "firstName": "A", "lastName": "B",
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(jsonRequest(http.MethodPost, "/api/v1/admin/login", gin.H{"email": "nobody@example.com", "password": "secret123"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Credentials", decode(t, w).Error)

	admin := app.adminSession(t)
	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(jsonRequest(http.MethodPost, "/api/v1/admin/logout", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionFrom(t, w, helpers.AdminCookieName)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestBookingRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminSession(t)
	hotel := app.createHotel(t, admin)
	alice := app.userSession(t, "alice@example.com")
	bob := app.userSession(t, "bob@example.com")

	w := app.do(jsonRequest(http.MethodPost, "/api/v1/bookings", gin.H{
		"hotelId": hotel.ID.Hex(), "checkIn": "2025-03-01", "checkOut": "2025-03-04",
		"adultCount": 2, "childCount": 0, "totalCost": 360, "status": "confirmed", "userId": "bob",
	}), alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking models.Booking
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &booking))
	assert.Equal(t, models.BookingPending, booking.Status)
	id := booking.ID.Hex()

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my-bookings", nil), alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Total)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil), bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id+"/cancel", nil), bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id+"/cancel", nil), alice)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id+"/cancel", nil), alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Booking is already cancelled", decode(t, w).Error)

	w = app.do(jsonRequest(http.MethodPut, "/api/v1/admin/bookings/"+id+"/status", gin.H{"status": "confirmed"}), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &booking))
	assert.Equal(t, models.BookingConfirmed, booking.Status)

	w = app.do(jsonRequest(http.MethodPut, "/api/v1/admin/bookings/"+id+"/status", gin.H{"status": "archived"}), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// an admin session does not open user routes
	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my-bookings", nil), admin)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Total)

	w = app.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/"+id, nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/"+id, nil), admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	app := newTestApp(t)
	app.store.Err = assert.AnError

	w := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	assert.Contains(t, w.Body.String(), "request_id")
}
