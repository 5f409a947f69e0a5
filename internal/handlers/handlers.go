package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/middleware"
)

// respondError writes the status for err's kind. Dependency failures go to the
// ErrorHandler middleware so the cause is logged and never shown to the caller.
func respondError(c *gin.Context, err error) {
	var status int
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	default:
		_ = c.Error(err)
		return
	}
	c.JSON(status, helpers.ErrorResponse(apperrors.MessageOf(err)))
}

// callerIdentity reads the identity set by the gate. Routes are only mounted
// behind middleware.Authorize, so a miss means a wiring bug.
func callerIdentity(c *gin.Context) (*helpers.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("Unauthorized access"))
		return nil, false
	}
	return identity, true
}

// SessionCookie describes how a session token is stored in the browser.
type SessionCookie struct {
	Name   string
	MaxAge int
	Secure bool
}

func (sc SessionCookie) set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, sc.MaxAge, "/", "", sc.Secure, true)
}

func (sc SessionCookie) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}
