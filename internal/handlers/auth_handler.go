package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/models"
	"github.com/joshua-takyi/hotelbay/internal/services"
)

func AdminLogin(a *services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, admin, err := a.LoginAdmin(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}

		cookie.set(c, token)
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"adminId": admin.ID.Hex()}, "Login successful"))
	}
}

func AdminRegister(a *services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, admin, err := a.RegisterAdmin(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}

		cookie.set(c, token)
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"adminId": admin.ID.Hex()}, "Admin registered successfully"))
	}
}

// AdminMe returns the signed-in admin's profile.
func AdminMe(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := callerIdentity(c)
		if !ok {
			return
		}

		admin, err := a.GetAdmin(c.Request.Context(), identity.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(admin, ""))
	}
}

func UserRegister(a *services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, user, err := a.RegisterUser(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}

		cookie.set(c, token)
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"userId": user.ID.Hex()}, "User registered successfully"))
	}
}

func UserLogin(a *services.AuthService, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		token, user, err := a.LoginUser(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}

		cookie.set(c, token)
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"userId": user.ID.Hex()}, "Login successful"))
	}
}

// Logout clears the session cookie. It works for both account kinds.
func Logout(cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie.clear(c)
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Logged out successfully"))
	}
}
