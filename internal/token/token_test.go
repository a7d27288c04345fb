package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/velmart/storefront/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	raw, err := svc.Issue(&models.User{ID: 42, IsAdmin: true})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.True(t, claims.IsAdmin)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := &Service{Secret: []byte("secret_a")}
	verifier := &Service{Secret: []byte("secret_b")}

	raw, err := issuer.Issue(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = verifier.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	claims := jwt.MapClaims{
		"sub":     float64(7),
		"isAdmin": false,
		"iat":     time.Now().Add(-3 * 24 * time.Hour).Unix(),
		"exp":     time.Now().Add(-24 * time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	_, err = svc.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingExpiry(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	claims := jwt.MapClaims{
		"sub":     float64(7),
		"isAdmin": false,
		"iat":     time.Now().Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	_, err = svc.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	svc := &Service{Secret: []byte("test_secret")}

	claims := jwt.MapClaims{
		"isAdmin": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
	require.NoError(t, err)

	_, err = svc.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
