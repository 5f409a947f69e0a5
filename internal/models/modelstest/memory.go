// Package modelstest provides in-memory repositories for tests.
package modelstest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/joshua-takyi/hotelbay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store implements HotelRepo, BookingRepo and AccountRepo in memory. Setting Err
// makes every call fail with it.
type Store struct {
	mu       sync.Mutex
	hotels   map[primitive.ObjectID]models.Hotel
	bookings map[primitive.ObjectID]models.Booking
	admins   map[primitive.ObjectID]models.Admin
	users    map[primitive.ObjectID]models.User
	clock    time.Time

	Err error
}

var (
	_ models.HotelRepo   = (*Store)(nil)
	_ models.BookingRepo = (*Store)(nil)
	_ models.AccountRepo = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		hotels:   make(map[primitive.ObjectID]models.Hotel),
		bookings: make(map[primitive.ObjectID]models.Booking),
		admins:   make(map[primitive.ObjectID]models.Admin),
		users:    make(map[primitive.ObjectID]models.User),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so sort order is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func oid(id string) (primitive.ObjectID, bool) {
	o, err := primitive.ObjectIDFromHex(id)
	return o, err == nil
}

func (s *Store) CreateHotel(_ context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if hotel.ID.IsZero() {
		hotel.ID = primitive.NewObjectID()
	}
	stored := *hotel
	stored.ImageURLs = append([]string(nil), hotel.ImageURLs...)
	s.hotels[hotel.ID] = stored
	return hotel, nil
}

func (s *Store) ListHotels(_ context.Context) ([]*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*models.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		h := h
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (s *Store) GetHotelByID(_ context.Context, id string) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := oid(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	h, ok := s.hotels[o]
	if !ok {
		return nil, models.ErrNotFound
	}
	h.ImageURLs = append([]string(nil), h.ImageURLs...)
	return &h, nil
}

func (s *Store) UpdateHotel(_ context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.hotels[hotel.ID]
	if !ok {
		return nil, models.ErrNotFound
	}
	// only allow-listed fields, mirroring the Mongo $set
	stored.Name = hotel.Name
	stored.City = hotel.City
	stored.Country = hotel.Country
	stored.Description = hotel.Description
	stored.Type = hotel.Type
	stored.AdultCount = hotel.AdultCount
	stored.ChildCount = hotel.ChildCount
	stored.Facilities = hotel.Facilities
	stored.PricePerNight = hotel.PricePerNight
	stored.StarRating = hotel.StarRating
	stored.ImageURLs = append([]string(nil), hotel.ImageURLs...)
	stored.LastUpdated = hotel.LastUpdated
	s.hotels[hotel.ID] = stored

	out := stored
	return &out, nil
}

func (s *Store) DeleteHotel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := oid(id)
	if !ok {
		return models.ErrNotFound
	}
	if _, ok := s.hotels[o]; !ok {
		return models.ErrNotFound
	}
	delete(s.hotels, o)
	return nil
}

// HotelCount reports how many hotels are stored.
func (s *Store) HotelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hotels)
}

func (s *Store) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := s.tick()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking
	return booking, nil
}

func (s *Store) ListBookings(_ context.Context) ([]*models.Booking, error) {
	return s.filterBookings(func(*models.Booking) bool { return true })
}

func (s *Store) ListBookingsByUser(_ context.Context, userID string) ([]*models.Booking, error) {
	return s.filterBookings(func(b *models.Booking) bool { return b.UserID == userID })
}

func (s *Store) filterBookings(keep func(*models.Booking) bool) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		b := b
		if keep(&b) {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := oid(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	b, ok := s.bookings[o]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (s *Store) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid booking status %q", status)
	}
	o, ok := oid(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	b, ok := s.bookings[o]
	if !ok {
		return nil, models.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = s.tick()
	s.bookings[o] = b
	return &b, nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := oid(id)
	if !ok {
		return models.ErrNotFound
	}
	if _, ok := s.bookings[o]; !ok {
		return models.ErrNotFound
	}
	delete(s.bookings, o)
	return nil
}

func (s *Store) CreateAdmin(_ context.Context, admin *models.Admin) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	admin.Email = models.NormalizeEmail(admin.Email)
	for _, a := range s.admins {
		if a.Email == admin.Email {
			return nil, models.ErrDuplicate
		}
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	if admin.Role == "" {
		admin.Role = "admin"
	}
	s.admins[admin.ID] = *admin
	return admin, nil
}

func (s *Store) FindAdminByID(_ context.Context, id string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := oid(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	a, ok := s.admins[o]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	email = models.NormalizeEmail(email)
	for _, a := range s.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

// DeleteAdmin removes an admin so tests can exercise revoked sessions.
func (s *Store) DeleteAdmin(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.admins, id)
}

func (s *Store) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, models.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	email = models.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

// DeleteUser removes a user so tests can exercise tokens that outlive accounts.
func (s *Store) DeleteUser(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}
