// Package services – AuthService
//
// Sign-in is delegated conceptually to an auth provider; this service is
// the minimal stand-in the dashboard needs: verify credentials against
// the admins collection, issue an HS256 session token, and answer "is a
// session present" for the rest of the system. Failed logins surface as
// ErrInvalidCredentials with no lockout or backoff.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
	"github.com/dealerhub/dealerhub-backend/internal/store"
)

// AdminFinder is the repository contract required by AuthService.
type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// Session is the settled state of a verified token.
type Session struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies session tokens.
type AuthService struct {
	Admins AdminFinder
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

// NewAuthService constructs an AuthService with the given signing secret
// and session lifetime.
func NewAuthService(admins AdminFinder, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{Admins: admins, Secret: secret, TTL: ttl, now: time.Now}
}

// Login verifies the credentials and returns a signed session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	admin, err := s.Admins.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := sessionClaims{
		Name: admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses a session token and returns the session it carries, or
// ErrInvalidSession for anything that does not check out.
func (s *AuthService) Verify(token string) (*Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return &Session{
		Email:     claims.Subject,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
