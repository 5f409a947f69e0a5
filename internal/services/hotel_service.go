package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	MaxHotelImages     = 6
	MaxImageSize       = 5 << 20
	imageUploadTimeout = 30 * time.Second
)

const errImageRequired = "At least one image is required"

// ImageUploader ingests one uploaded file and returns its durable URL.
type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type HotelService struct {
	hotelRepo models.HotelRepo
	uploader  ImageUploader
	logger    *slog.Logger
}

func NewHotelService(hotelRepo models.HotelRepo, uploader ImageUploader, logger *slog.Logger) *HotelService {
	return &HotelService{
		hotelRepo: hotelRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (hs *HotelService) ListHotels(ctx context.Context) ([]*models.Hotel, error) {
	hotels, err := hs.hotelRepo.ListHotels(ctx)
	if err != nil {
		return nil, apperrors.Dependency("Error fetching hotels", err)
	}
	return hotels, nil
}

func (hs *HotelService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	hotel, err := hs.hotelRepo.GetHotelByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Hotel not found", "Error fetching hotel")
	}
	return hotel, nil
}

// CreateHotel stores a new hotel owned by the calling admin. Uploaded files, when
// present, replace any URLs in the payload.
func (hs *HotelService) CreateHotel(ctx context.Context, owner *helpers.Identity, in *models.HotelInput, files []*multipart.FileHeader) (*models.Hotel, error) {
	if owner == nil || !owner.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can create hotels")
	}
	ownerID := owner.ID
	if err := hs.checkInput(in, files); err != nil {
		return nil, err
	}

	imageURLs := []string(in.ImageURLs)
	if len(files) > 0 {
		uploaded, err := hs.uploadImages(ctx, files)
		if err != nil {
			return nil, err
		}
		imageURLs = uploaded
	}
	if len(imageURLs) == 0 {
		return nil, apperrors.Validation(errImageRequired)
	}

	hotel := &models.Hotel{UserID: ownerID}
	hotel.Apply(in, imageURLs)
	hotel.LastUpdated = time.Now().UTC()

	created, err := hs.hotelRepo.CreateHotel(ctx, hotel)
	if err != nil {
		return nil, apperrors.Dependency("Error creating hotel", err)
	}

	hs.logger.Info("Hotel created", "hotel_id", created.ID.Hex(), "owner_id", ownerID, "images", len(imageURLs))
	return created, nil
}

// UpdateHotel overwrites the allow-listed fields of an existing hotel. Uploaded
// file URLs are appended after the URLs supplied in the payload.
func (hs *HotelService) UpdateHotel(ctx context.Context, id string, in *models.HotelInput, files []*multipart.FileHeader) (*models.Hotel, error) {
	if err := hs.checkInput(in, files); err != nil {
		return nil, err
	}

	hotel, err := hs.hotelRepo.GetHotelByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Hotel not found", "Error fetching hotel")
	}

	imageURLs := make([]string, 0, len(in.ImageURLs)+len(files))
	imageURLs = append(imageURLs, in.ImageURLs...)
	if len(files) > 0 {
		uploaded, err := hs.uploadImages(ctx, files)
		if err != nil {
			return nil, err
		}
		imageURLs = append(imageURLs, uploaded...)
	}
	if len(imageURLs) == 0 {
		return nil, apperrors.Validation(errImageRequired)
	}

	hotel.Apply(in, imageURLs)
	hotel.LastUpdated = time.Now().UTC()

	updated, err := hs.hotelRepo.UpdateHotel(ctx, hotel)
	if err != nil {
		return nil, repoError(err, "Hotel not found", "Error updating hotel")
	}
	return updated, nil
}

func (hs *HotelService) DeleteHotel(ctx context.Context, id string) error {
	if err := hs.hotelRepo.DeleteHotel(ctx, id); err != nil {
		return repoError(err, "Hotel not found", "Error deleting hotel")
	}
	hs.logger.Info("Hotel deleted", "hotel_id", id)
	return nil
}

func (hs *HotelService) checkInput(in *models.HotelInput, files []*multipart.FileHeader) error {
	if in == nil {
		return apperrors.Validation("hotel payload is required")
	}
	in.Sanitize()
	if err := validateStruct(in); err != nil {
		return err
	}

	if len(files) > MaxHotelImages {
		return apperrors.Validation(fmt.Sprintf("At most %d images can be uploaded", MaxHotelImages))
	}
	for _, f := range files {
		if f.Size > MaxImageSize {
			return apperrors.Validation(fmt.Sprintf("Image %s exceeds the 5MB limit", f.Filename))
		}
	}
	if len(files) == 0 && len(in.ImageURLs) == 0 {
		return apperrors.Validation(errImageRequired)
	}
	return nil
}

// uploadImages ingests all files concurrently and returns their URLs in
// submission order. Any failure fails the whole batch.
func (hs *HotelService) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageUploadTimeout)
	defer cancel()

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := hs.uploader.Upload(gctx, file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		hs.logger.Error("Image upload failed", "files", len(files), "error", err)
		return nil, apperrors.Dependency("Error uploading images", err)
	}
	return urls, nil
}
