package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "test-signing-secret-at-least-32-bytes-long"

func newTestJWTService(t *testing.T, lifetime time.Duration) *hmacJWTService {
	t.Helper()
	svc, err := NewHMACJWTService(testSigningSecret, lifetime)
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewHMACJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewHMACJWTService("short", time.Hour)
	assert.Error(t, err, "short secrets must be rejected")

	svc, err := NewHMACJWTService(testSigningSecret, 0)
	require.NoError(t, err)
	assert.NotNil(t, svc, "non-positive lifetime falls back to the default")
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	// Move validation time past expiry plus clock skew.
	svc.timeFunc = func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	// Just past expiry but within the 30s leeway.
	svc.timeFunc = func() time.Time {
		return time.Now().Add(time.Hour + 10*time.Second)
	}

	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err, "tokens within skew tolerance should validate")
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	other := newTestJWTService(t, time.Hour)
	other.signingKey = []byte("another-secret-that-is-32-bytes-long!")

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongType(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	now := time.Now()

	claims := jwtCustomClaims{
		UserID:    uuid.New(),
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(svc.signingKey)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Hour)
	now := time.Now()

	claims := jwtCustomClaims{
		UserID:    uuid.New(),
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
