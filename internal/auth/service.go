// Package auth
package auth

import (
	"context"
	"time"

	"actiowatch/internal/clock"
	"actiowatch/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const subject = "admin"

type service struct {
	passwordHash []byte
	jwtSecret    string
	jwtExpiry    time.Duration
	clock        clock.Clock
}

// NewService returns an AuthService for the single local operator.
// Authentication is disabled unless both jwtSecret and passwordHash are
// set.
func NewService(passwordHash, jwtSecret string, jwtExpiry time.Duration, clk clock.Clock) domain.AuthService {
	return &service{
		passwordHash: []byte(passwordHash),
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		clock:        clk,
	}
}

func (s *service) Enabled() bool {
	return s.jwtSecret != "" && len(s.passwordHash) > 0
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if !s.Enabled() {
		return nil, domain.ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.jwtExpiry)

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (s *service) Verify(token string) (jwt.MapClaims, error) {
	if !s.Enabled() {
		return nil, domain.ErrAuthDisabled
	}
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	return domain.ValidateToken(token, s.jwtSecret)
}
