package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hotel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"userId" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	City          string             `bson:"city" json:"city"`
	Country       string             `bson:"country" json:"country"`
	Description   string             `bson:"description" json:"description"`
	Type          string             `bson:"type" json:"type"`
	AdultCount    int                `bson:"adultCount" json:"adultCount"`
	ChildCount    int                `bson:"childCount" json:"childCount"`
	Facilities    []string           `bson:"facilities" json:"facilities"`
	PricePerNight float64            `bson:"pricePerNight" json:"pricePerNight"`
	StarRating    int                `bson:"starRating" json:"starRating"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	LastUpdated   time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

// URLList accepts either a single URL string or a list of URLs.
type URLList []string

func (u *URLList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*u = URLList{single}.Normalize()
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("imageUrls must be a string or a list of strings")
	}
	*u = URLList(many).Normalize()
	return nil
}

// Normalize drops blank entries.
func (u URLList) Normalize() URLList {
	out := make(URLList, 0, len(u))
	for _, v := range u {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HotelInput is the create/update payload. It binds from JSON or multipart form
// fields; uploaded files travel separately.
type HotelInput struct {
	Name          string   `json:"name" form:"name" validate:"required"`
	City          string   `json:"city" form:"city" validate:"required"`
	Country       string   `json:"country" form:"country" validate:"required"`
	Description   string   `json:"description" form:"description" validate:"required"`
	Type          string   `json:"type" form:"type" validate:"required"`
	PricePerNight *float64 `json:"pricePerNight" form:"pricePerNight" validate:"required,gte=0"`
	AdultCount    *int     `json:"adultCount" form:"adultCount" validate:"required,gte=0"`
	ChildCount    *int     `json:"childCount" form:"childCount" validate:"required,gte=0"`
	StarRating    *int     `json:"starRating" form:"starRating" validate:"required,gte=0,lte=5"`
	Facilities    []string `json:"facilities" form:"facilities" validate:"required"`
	ImageURLs     URLList  `json:"imageUrls" form:"imageUrls"`
}

// Sanitize trims text fields and blank list entries.
func (in *HotelInput) Sanitize() {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	in.ImageURLs = in.ImageURLs.Normalize()
	if in.Facilities != nil {
		facilities := make([]string, 0, len(in.Facilities))
		for _, f := range in.Facilities {
			if f = strings.TrimSpace(f); f != "" {
				facilities = append(facilities, f)
			}
		}
		in.Facilities = facilities
	}
}

// Apply copies the updatable fields onto h. Identity and ownership are never
// touched.
func (h *Hotel) Apply(in *HotelInput, imageURLs []string) {
	h.Name = in.Name
	h.City = in.City
	h.Country = in.Country
	h.Description = in.Description
	h.Type = in.Type
	h.PricePerNight = *in.PricePerNight
	h.AdultCount = *in.AdultCount
	h.ChildCount = *in.ChildCount
	h.StarRating = *in.StarRating
	h.Facilities = in.Facilities
	h.ImageURLs = imageURLs
}

func (h *Hotel) updateDocument() bson.M {
	return bson.M{
		"name":          h.Name,
		"city":          h.City,
		"country":       h.Country,
		"description":   h.Description,
		"type":          h.Type,
		"adultCount":    h.AdultCount,
		"childCount":    h.ChildCount,
		"facilities":    h.Facilities,
		"pricePerNight": h.PricePerNight,
		"starRating":    h.StarRating,
		"imageUrls":     h.ImageURLs,
		"lastUpdated":   h.LastUpdated,
	}
}
