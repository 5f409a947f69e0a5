package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/hotelbay/internal/apperrors"
	"github.com/joshua-takyi/hotelbay/internal/helpers"
	"github.com/joshua-takyi/hotelbay/internal/services"
)

// IdentityKey is the gin context key holding the caller's *helpers.Identity.
const IdentityKey = "identity"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors pushed with c.Error and answers with a generic 500
// when the handler has not written a response itself.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get("request_id")

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if c.Writer.Written() {
			return
		}
		// Don't return error details to the caller
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    apperrors.MessageOf(err.Err),
			"error":      "Internal server error",
			"request_id": requestID,
		})
	}
}

// Authorize resolves the session token from cookieName, or a Bearer header, with
// verifier. Failures abort with 401; store failures are left to ErrorHandler.
func Authorize(cookieName string, verifier services.IdentityVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			logger.Debug("Missing session token", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, helpers.ErrorResponse("Unauthorized access"))
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindDependency {
				_ = c.Error(err)
				c.Abort()
				return
			}
			logger.Debug("Session rejected", "path", c.Request.URL.Path, "reason", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, helpers.ErrorResponse(apperrors.MessageOf(err)))
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetIdentity returns the identity set by Authorize.
func GetIdentity(c *gin.Context) (*helpers.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*helpers.Identity)
	return identity, ok && identity != nil
}
