package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbay/internal/container"
	"github.com/joshua-takyi/hotelbay/internal/handlers"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/middleware"
)

// maxMultipartMemory covers the largest hotel upload kept in memory.
const maxMultipartMemory = 32 << 20

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	adminCookie := sessionCookie(container, helpers.AdminCookieName)
	userCookie := sessionCookie(container, helpers.UserCookieName)
	requireAdmin := middleware.Authorize(helpers.AdminCookieName, container.AdminVerifier, container.Logger)
	requireUser := middleware.Authorize(helpers.UserCookieName, container.UserVerifier, container.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "hotelbay-api",
			})
		})

		v1.GET("/hotels", handlers.ListHotels(container.HotelService))
		v1.GET("/hotels/:id", handlers.GetHotel(container.HotelService))
	}

	adminRoutes := v1.Group("/admin")
	{
		adminRoutes.POST("/login", handlers.AdminLogin(container.AuthService, adminCookie))
		adminRoutes.POST("/register", handlers.AdminRegister(container.AuthService, adminCookie))
		adminRoutes.POST("/logout", handlers.Logout(adminCookie))
	}

	protectedAdmin := adminRoutes.Group("/")
	protectedAdmin.Use(requireAdmin)
	{
		protectedAdmin.GET("/me", handlers.AdminMe(container.AuthService))

		protectedAdmin.GET("/hotels", handlers.ListHotels(container.HotelService))
		protectedAdmin.POST("/hotels", handlers.CreateHotel(container.HotelService))
		protectedAdmin.GET("/hotels/:id", handlers.GetHotel(container.HotelService))
		protectedAdmin.PUT("/hotels/:id", handlers.UpdateHotel(container.HotelService))
		protectedAdmin.DELETE("/hotels/:id", handlers.DeleteHotel(container.HotelService))

		protectedAdmin.GET("/bookings", handlers.ListBookings(container.BookingService))
		protectedAdmin.GET("/bookings/:id", handlers.GetBooking(container.BookingService))
		protectedAdmin.PUT("/bookings/:id/status", handlers.UpdateBookingStatus(container.BookingService))
		protectedAdmin.DELETE("/bookings/:id", handlers.DeleteBooking(container.BookingService))
	}

	userRoutes := v1.Group("/users")
	{
		userRoutes.POST("/register", handlers.UserRegister(container.AuthService, userCookie))
		userRoutes.POST("/login", handlers.UserLogin(container.AuthService, userCookie))
		userRoutes.POST("/logout", handlers.Logout(userCookie))
	}

	bookingRoutes := v1.Group("/bookings")
	bookingRoutes.Use(requireUser)
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/my-bookings", handlers.ListMyBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetMyBooking(container.BookingService))
		bookingRoutes.PUT("/:id/cancel", handlers.CancelBooking(container.BookingService))
	}

	return r
}

func sessionCookie(container *container.Container, name string) handlers.SessionCookie {
	return handlers.SessionCookie{
		Name:   name,
		MaxAge: int(container.Tokens.TTL().Seconds()),
		Secure: container.Config.IsProduction(),
	}
}
