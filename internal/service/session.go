package service

import (
	"fmt"
	"sync"
	"time"

	"catalog-console/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Session holds the bearer token of the signed-in user. It answers both "who
// is signed in" for the view and "what token to send" for the API client.
type Session struct {
	mu     sync.RWMutex
	token  string
	tokens TokenService
	logger *zap.Logger
}

// NewSession creates a session around token. When tokens is nil the claims
// are read without verifying the signature; the API still verifies them.
func NewSession(token string, tokens TokenService, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{token: token, tokens: tokens, logger: logger}
}

// Token returns the raw bearer token
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the bearer token
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// CurrentUser returns the user the token belongs to, or nil when there is no
// usable token
func (s *Session) CurrentUser() *domain.User {
	token := s.Token()
	if token == "" {
		return nil
	}

	claims, err := s.claims(token)
	if err != nil {
		s.logger.Debug("Ignoring unusable session token", zap.Error(err))
		return nil
	}

	return claims.User()
}

func (s *Session) claims(token string) (*Claims, error) {
	if s.tokens != nil {
		return s.tokens.ValidateToken(token)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	return claims, nil
}
