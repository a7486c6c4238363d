// Auth HTTP handlers.
//
//   - POST /auth/login    (exchange credentials for a session token)
//   - GET  /auth/session  (describe the current session)
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/dealerhub-backend/internal/services"
)

// AuthService defines the session operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use.
type AuthService interface {
	// Login validates admin credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Verify checks a session token and returns the session it encodes.
	Verify(token string) (*services.Session, error)
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// SessionResponse describes the verified session for GET /auth/session.
type SessionResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges admin credentials for a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password required")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failService(c, err, http.StatusInternalServerError, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token})
}

// Session describes the session behind the request's bearer token. The
// route sits behind the session middleware, so by the time this handler
// runs the token is known to be valid; Verify is called again only to
// recover the full claims.
func (h *Handlers) Session(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	sess, err := h.authSvc.Verify(token)
	if err != nil {
		failService(c, err, http.StatusUnauthorized, ErrCodeUnauthorized)
		return
	}
	ok(c, http.StatusOK, SessionResponse{
		Email:     sess.Email,
		Name:      sess.Name,
		ExpiresAt: sess.ExpiresAt,
	})
}
