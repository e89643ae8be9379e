package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdo/taskdo-api/internal/config"
	"github.com/taskdo/taskdo-api/internal/service/auth"
)

const testSecret = "test-secret-key-thats-32-characters"

func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	_, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	assert.NoError(t, err)

	_, err = auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "too-short",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now))
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc := auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now))
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		service auth.JWTService
		token   string
		wantErr error
	}{
		{
			name:    "expired token",
			service: auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now.Add(2*time.Hour))),
			token:   token,
			wantErr: auth.ErrExpiredToken,
		},
		{
			name:    "wrong secret",
			service: auth.NewTestJWTService("another-secret-key-32-characters-x", time.Hour, fixedTime(now)),
			token:   token,
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "malformed token",
			service: svc,
			token:   "not.a.token",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "empty token",
			service: svc,
			token:   "",
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service.ValidateToken(ctx, tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenTypeEnforcement(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now))
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	// A refresh token is not accepted where an access token is expected
	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)

	// And an access token is not accepted for refreshing
	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now))
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	// The refresh lifetime is twice the access lifetime here, so at
	// now+3h the refresh token has expired
	later := auth.NewTestJWTService(testSecret, time.Hour, fixedTime(now.Add(3*time.Hour)))
	_, err = later.ValidateRefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, auth.ErrExpiredRefreshToken)

	_, err = svc.ValidateRefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestAccessTokenLifetime(t *testing.T) {
	svc := auth.NewTestJWTService(testSecret, 90*time.Minute, time.Now)
	assert.Equal(t, 90*time.Minute, svc.AccessTokenLifetime())
}
