package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/services"
)

// ImageFilesField is the multipart field carrying hotel images.
const ImageFilesField = "imageFiles"

// bindHotel reads a hotel payload from JSON or multipart form data. Files are
// only present for multipart requests.
func bindHotel(c *gin.Context) (*models.HotelInput, []*multipart.FileHeader, bool) {
	var in models.HotelInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
		return nil, nil, false
	}

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return &in, nil, true
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid multipart form"))
		return nil, nil, false
	}
	return &in, form.File[ImageFilesField], true
}

func CreateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := callerIdentity(c)
		if !ok {
			return
		}
		in, files, ok := bindHotel(c)
		if !ok {
			return
		}

		hotel, err := h.CreateHotel(c.Request.Context(), identity, in, files)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(hotel, "Hotel created successfully"))
	}
}

func UpdateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, files, ok := bindHotel(c)
		if !ok {
			return
		}

		hotel, err := h.UpdateHotel(c.Request.Context(), helpers.TrimID(c.Param("id")), in, files)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(hotel, "Hotel updated successfully"))
	}
}

// ListHotels serves both the admin and the public listing.
func ListHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotels, err := h.ListHotels(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.ListResponse(hotels, len(hotels)))
	}
}

func GetHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotel, err := h.GetHotel(c.Request.Context(), helpers.TrimID(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(hotel, ""))
	}
}

func DeleteHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.DeleteHotel(c.Request.Context(), helpers.TrimID(c.Param("id"))); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Hotel deleted successfully"))
	}
}
