package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/infrastructure/config"
)

const (
	// SessionKeyContextKey is the gin context key for the guest session key
	SessionKeyContextKey = "session_key"
	// UserIDContextKey is the gin context key for the authenticated user ID
	UserIDContextKey = "user_id"
	// SessionKeyHeader carries the guest session key for cookie-less clients
	SessionKeyHeader = "X-Session-Key"
)

// Session resolves the caller's identity for cart ownership. Signed-in
// users are identified by the X-User-ID header set by the auth proxy in
// front of this service; guests get a random session key, delivered both
// as a cookie and as a response header so mobile clients without a
// cookie jar can replay it.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if userID, err := uuid.Parse(raw); err == nil {
				c.Set(UserIDContextKey, userID)
			}
		}

		sessionKey := c.GetHeader(SessionKeyHeader)
		if sessionKey == "" {
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				sessionKey = cookie
			}
		}
		if sessionKey == "" {
			sessionKey = generateSessionKey()
			c.SetCookie(cfg.CookieName, sessionKey, int(cfg.MaxAge.Seconds()), "/", "", cfg.Secure, true)
		}
		c.Set(SessionKeyContextKey, sessionKey)
		c.Writer.Header().Set(SessionKeyHeader, sessionKey)

		c.Next()
	}
}

// GetUserID returns the authenticated user ID, if any
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// GetSessionKey returns the guest session key for the request
func GetSessionKey(c *gin.Context) string {
	return c.GetString(SessionKeyContextKey)
}

// generateSessionKey generates a 128-bit random hex session key
func generateSessionKey() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)
}
