package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velmart/storefront/internal/models"
)

func TestRegisterIgnoresAdminFlag(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, apiRoot+"/users", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password",
		"isAdmin":  true,
	}, "")
	requireStatus(t, rec, http.StatusCreated)

	user := decode[models.User](t, rec)
	require.False(t, user.IsAdmin)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password",
	}
	requireStatus(t, env.do(http.MethodPost, apiRoot+"/users", payload, ""), http.StatusCreated)
	requireStatus(t, env.do(http.MethodPost, apiRoot+"/users", payload, ""), http.StatusConflict)
}

func TestLoginReturnsUserAndToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", false)

	rec := env.do(http.MethodPost, apiRoot+"/users/login", map[string]any{
		"email":    "alice@example.com",
		"password": "password",
	}, "")
	requireStatus(t, rec, http.StatusOK)

	resp := decode[map[string]any](t, rec)
	require.NotEmpty(t, resp["token"])
	require.NotNil(t, resp["user"])

	claims, err := env.Tokens.Parse(resp["token"].(string))
	require.NoError(t, err)
	require.False(t, claims.IsAdmin)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice@example.com", false)

	rec := env.do(http.MethodPost, apiRoot+"/users/login", map[string]any{
		"email":    "alice@example.com",
		"password": "nope",
	}, "")
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestUserReadsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user, userToken := env.seedUser("user@example.com", false)
	_, adminToken := env.seedUser("admin@example.com", true)

	requireStatus(t, env.do(http.MethodGet, apiRoot+"/users", nil, ""), http.StatusUnauthorized)
	requireStatus(t, env.do(http.MethodGet, apiRoot+"/users", nil, userToken), http.StatusForbidden)

	rec := env.do(http.MethodGet, apiRoot+"/users", nil, adminToken)
	requireStatus(t, rec, http.StatusOK)
	users := decode[[]models.User](t, rec)
	require.Len(t, users, 2)

	rec = env.do(http.MethodGet, apiRoot+"/users/"+itoa(user.ID), nil, adminToken)
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, user.Email, decode[models.User](t, rec).Email)
}
