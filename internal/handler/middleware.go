package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/pkg/response"
	"github.com/rs/zerolog"
)

const userIDKey = "user_id"

// TokenVerifier turns a bearer token into the caller's user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireUser rejects requests without a valid bearer token before any handler or validation runs.
func RequireUser(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || v == nil {
			response.WriteError(c, service.ErrUnauthorized)
			return
		}
		id, err := v.Verify(strings.TrimSpace(token))
		if err != nil || id == "" {
			response.WriteError(c, service.ErrUnauthorized)
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the verified caller id, or "" outside RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequestLogger writes one event per request. 5xx responses log at error level with the attached errors.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
			if len(c.Errors) > 0 {
				event = event.Str("errors", c.Errors.String())
			}
		case status >= 400:
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("uri", c.Request.URL.RequestURI()).
			Int("status", status).
			Dur("took", time.Since(start)).
			Str("user_id", UserID(c)).
			Msg("request handled")
	}
}
