package service

import (
	"testing"
	"time"

	"catalog-console/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(t *testing.T, secret string, user *domain.User, ttl time.Duration) string {
	t.Helper()
	svc := &tokenService{jwtSecret: secret, now: time.Now}
	if ttl < 0 {
		svc.now = func() time.Time { return time.Now().Add(2 * ttl) }
		ttl = -ttl
	}
	token, err := svc.IssueToken(user, ttl)
	require.NoError(t, err)
	return token
}

func TestSessionWithoutToken(t *testing.T) {
	s := NewSession("", nil, nil)

	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.Token())
}

func TestSessionVerifiedUser(t *testing.T) {
	token := issue(t, "secret", &domain.User{UserID: "u1", RoleName: "Admin"}, time.Hour)
	s := NewSession(token, NewTokenService("secret"), nil)

	assert.Equal(t, &domain.User{UserID: "u1", RoleName: "Admin"}, s.CurrentUser())
	assert.Equal(t, token, s.Token())
}

func TestSessionRejectsBadSignatureWhenVerifying(t *testing.T) {
	token := issue(t, "other", &domain.User{UserID: "u1", RoleName: "Admin"}, time.Hour)
	s := NewSession(token, NewTokenService("secret"), nil)

	assert.Nil(t, s.CurrentUser())
}

func TestSessionUnverifiedUser(t *testing.T) {
	token := issue(t, "whatever", &domain.User{UserID: "u2", RoleName: "Customer"}, time.Hour)
	s := NewSession(token, nil, nil)

	assert.Equal(t, &domain.User{UserID: "u2", RoleName: "Customer"}, s.CurrentUser())
}

func TestSessionExpiredTokenHasNoUser(t *testing.T) {
	token := issue(t, "whatever", &domain.User{UserID: "u3", RoleName: "Admin"}, -time.Hour)

	assert.Nil(t, NewSession(token, nil, nil).CurrentUser())
}

func TestSessionGarbageTokenHasNoUser(t *testing.T) {
	assert.Nil(t, NewSession("not-a-jwt", nil, nil).CurrentUser())
}

func TestSessionSetToken(t *testing.T) {
	s := NewSession("", nil, nil)
	token := issue(t, "k", &domain.User{UserID: "u4", RoleName: "Admin"}, time.Hour)

	s.SetToken(token)

	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "u4", s.CurrentUser().UserID)
}
