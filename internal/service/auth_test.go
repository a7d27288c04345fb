package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velmart/storefront/internal/transport"
)

func TestRegisterForcesRegularUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, Tokens: newTestTokens()}
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "password",
		City:     "Berlin",
	})
	require.NoError(t, err)
	require.False(t, user.IsAdmin)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "password", user.PasswordHash)
	require.NotEmpty(t, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, Tokens: newTestTokens()}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password",
	})
	require.NoError(t, err)

	// uniqueness is case-insensitive
	_, err = svc.Register(ctx, transport.RegisterRequest{
		Username: "alice2", Email: "ALICE@example.com", Password: "password",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, Tokens: newTestTokens()}
	ctx := context.Background()

	for _, req := range []transport.RegisterRequest{
		{Email: "a@example.com", Password: "password"},
		{Username: "alice", Password: "password"},
		{Username: "alice", Email: "a@example.com"},
	} {
		_, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestLogin(t *testing.T) {
	r := newTestRepo(t)
	tokens := newTestTokens()
	svc := &AuthService{Repo: r, Tokens: tokens}
	ctx := context.Background()

	seeded := seedUser(t, r, "admin@example.com", true)

	user, raw, err := svc.Login(ctx, "admin@example.com", "password")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.NotEmpty(t, raw)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, claims.UserID)
	require.True(t, claims.IsAdmin)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, Tokens: newTestTokens()}
	ctx := context.Background()

	seedUser(t, r, "user@example.com", false)

	_, _, err := svc.Login(ctx, "user@example.com", "wrong_password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
