package service

import (
	"errors"
	"fmt"
	"time"

	"catalog-console/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiration is the default lifetime of issued tokens
const AccessTokenExpiration = 15 * time.Minute

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSecret  = errors.New("token secret is not configured")
	ErrMissingSubject = errors.New("token has no user id")
)

// Claims represents the JWT claims understood by the catalog API
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// User converts the claims into the console's view of the principal
func (c *Claims) User() *domain.User {
	return &domain.User{UserID: c.UserID, RoleName: c.Role}
}

// TokenService issues and validates HS256 access tokens
type TokenService interface {
	IssueToken(user *domain.User, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenService struct {
	jwtSecret string
	now       func() time.Time
}

// NewTokenService creates a new instance of TokenService
func NewTokenService(jwtSecret string) TokenService {
	return &tokenService{jwtSecret: jwtSecret, now: time.Now}
}

// IssueToken signs a token carrying the user's id and role
func (s *tokenService) IssueToken(user *domain.User, ttl time.Duration) (string, error) {
	if s.jwtSecret == "" {
		return "", ErrMissingSecret
	}
	if user == nil || user.UserID == "" {
		return "", ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = AccessTokenExpiration
	}

	now := s.now()
	claims := &Claims{
		UserID: user.UserID,
		Role:   user.RoleName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *tokenService) ValidateToken(tokenString string) (*Claims, error) {
	if s.jwtSecret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
