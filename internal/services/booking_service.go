package services

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
)

const errBookingNotFound = "Booking not found"

type BookingService struct {
	bookingRepo models.BookingRepo
	hotelRepo   models.HotelRepo
	logger      *slog.Logger
}

func NewBookingService(bookingRepo models.BookingRepo, hotelRepo models.HotelRepo, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
		logger:      logger,
	}
}

// CreateBooking books a stay for userID. The booking always starts pending.
func (bs *BookingService) CreateBooking(ctx context.Context, userID string, in *models.BookingInput) (*models.Booking, error) {
	if in == nil {
		return nil, apperrors.Validation("booking payload is required")
	}
	in.HotelID = helpers.TrimID(in.HotelID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	checkIn, err := helpers.ParseISODate(in.CheckIn)
	if err != nil {
		return nil, apperrors.Validation("checkIn must be an ISO-8601 date")
	}
	checkOut, err := helpers.ParseISODate(in.CheckOut)
	if err != nil {
		return nil, apperrors.Validation("checkOut must be an ISO-8601 date")
	}
	if !checkOut.After(checkIn) {
		return nil, apperrors.Validation("checkOut must be after checkIn")
	}

	hotel, err := bs.hotelRepo.GetHotelByID(ctx, in.HotelID)
	if err != nil {
		return nil, repoError(err, "Hotel not found", "Error creating booking")
	}

	booking := &models.Booking{
		UserID:     userID,
		HotelID:    hotel.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		AdultCount: *in.AdultCount,
		ChildCount: *in.ChildCount,
		TotalCost:  *in.TotalCost,
		Status:     models.BookingPending,
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, apperrors.Dependency("Error creating booking", err)
	}

	bs.logger.Info("Booking created", "booking_id", created.ID.Hex(), "hotel_id", hotel.ID.Hex(), "user_id", userID)
	return created, nil
}

func (bs *BookingService) ListUserBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency("Error fetching bookings", err)
	}
	return bookings, nil
}

// GetUserBooking returns the booking only when the caller owns it.
func (bs *BookingService) GetUserBooking(ctx context.Context, caller *helpers.Identity, id string) (*models.Booking, error) {
	booking, err := bs.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsBooking(caller, booking) {
		return nil, apperrors.Forbidden("Not authorized to access this booking")
	}
	return booking, nil
}

// CancelBooking moves an owned booking to cancelled. Cancelling twice is an error.
func (bs *BookingService) CancelBooking(ctx context.Context, caller *helpers.Identity, id string) (*models.Booking, error) {
	id = helpers.TrimID(id)
	booking, err := bs.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsBooking(caller, booking) {
		return nil, apperrors.Forbidden("Not authorized to cancel this booking")
	}
	if booking.Status == models.BookingCancelled {
		return nil, apperrors.Validation("Booking is already cancelled")
	}

	updated, err := bs.bookingRepo.UpdateBookingStatus(ctx, id, models.BookingCancelled)
	if err != nil {
		return nil, repoError(err, errBookingNotFound, "Error cancelling booking")
	}

	bs.logger.Info("Booking cancelled", "booking_id", id, "user_id", caller.ID)
	return updated, nil
}

func ownsBooking(caller *helpers.Identity, booking *models.Booking) bool {
	return caller != nil && caller.IsUser() && caller.IsOwner(booking.UserID)
}

func (bs *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.ListBookings(ctx)
	if err != nil {
		return nil, apperrors.Dependency("Error fetching bookings", err)
	}
	return bookings, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, helpers.TrimID(id))
	if err != nil {
		return nil, repoError(err, errBookingNotFound, "Error fetching booking")
	}
	return booking, nil
}

// SetBookingStatus lets an admin move a booking to any status from any status.
func (bs *BookingService) SetBookingStatus(ctx context.Context, id string, in *models.BookingStatusInput) (*models.Booking, error) {
	if in == nil {
		return nil, apperrors.Validation("status is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	updated, err := bs.bookingRepo.UpdateBookingStatus(ctx, helpers.TrimID(id), in.Status)
	if err != nil {
		return nil, repoError(err, errBookingNotFound, "Error updating booking status")
	}

	bs.logger.Info("Booking status updated", "booking_id", id, "status", in.Status)
	return updated, nil
}

func (bs *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := bs.bookingRepo.DeleteBooking(ctx, helpers.TrimID(id)); err != nil {
		return repoError(err, errBookingNotFound, "Error deleting booking")
	}
	bs.logger.Info("Booking deleted", "booking_id", id)
	return nil
}
