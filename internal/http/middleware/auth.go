// Session middleware. The API consumes the auth layer through a single
// question — is a valid session present — so the middleware depends only
// on a token-verification function, not on the auth service type.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionVerifier validates a bearer token and returns the identity it
// carries. Implementations return an error for anything invalid or
// expired.
type SessionVerifier func(token string) (email string, err error)

// RequireSession rejects requests without a valid Bearer token, and
// stores the verified session email in the Gin context for handlers and
// downstream logging.
func RequireSession(verify SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		email, err := verify(token)
		if err != nil {
			unauthorized(c, "invalid or expired session")
			return
		}
		c.Set(ctxKeySession, email)
		c.Next()
	}
}

// SessionEmail returns the verified session identity, or "" when the
// request was not authenticated.
func SessionEmail(c *gin.Context) string {
	return c.GetString(ctxKeySession)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.GetString(ctxKeyRequestID),
		"code":       "unauthorized",
		"message":    msg,
	})
}
