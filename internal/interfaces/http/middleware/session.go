package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nounthanith/localbrand-frontend/internal/application/session"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
)

// SessionConfig controls how the visitor session is identified
type SessionConfig struct {
	CookieName string
	HeaderName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the visitor session from the header or the cookie,
// issuing a new id when neither carries a valid one. The id is echoed in the
// response header and refreshed in the cookie on every request.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.HeaderName)
		if !session.IsValidID(id) {
			id, _ = c.Cookie(cfg.CookieName)
		}
		if !session.IsValidID(id) {
			id = session.NewID()
		}

		c.Set(logger.GinSessionIDKey, id)
		c.Writer.Header().Set(cfg.HeaderName, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, id, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)

		ctx, _ := logger.WithSessionID(c.Request.Context(), logger.FromContext(c.Request.Context()), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(logger.GinSessionIDKey)
}
