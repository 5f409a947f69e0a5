package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     string             `bson:"userId" json:"userId"`
	HotelID    primitive.ObjectID `bson:"hotelId" json:"hotelId"`
	CheckIn    time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut   time.Time          `bson:"checkOut" json:"checkOut"`
	AdultCount int                `bson:"adultCount" json:"adultCount"`
	ChildCount int                `bson:"childCount" json:"childCount"`
	TotalCost  float64            `bson:"totalCost" json:"totalCost"`
	// pending until an admin confirms; users may only move it to cancelled
	Status    BookingStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the user's create payload. Owner and status are never taken
// from it.
type BookingInput struct {
	HotelID    string   `json:"hotelId" validate:"required"`
	CheckIn    string   `json:"checkIn" validate:"required"`
	CheckOut   string   `json:"checkOut" validate:"required"`
	AdultCount *int     `json:"adultCount" validate:"required,gte=0"`
	ChildCount *int     `json:"childCount" validate:"required,gte=0"`
	TotalCost  *float64 `json:"totalCost" validate:"required,gte=0"`
}

type BookingStatusInput struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
