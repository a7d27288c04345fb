package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velmart/storefront/internal/config"
	"github.com/velmart/storefront/internal/hash"
	"github.com/velmart/storefront/internal/models"
	"github.com/velmart/storefront/internal/policy"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/service"
	"github.com/velmart/storefront/internal/token"
	"github.com/velmart/storefront/internal/upload"
)

const apiRoot = "/api/v1"

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	Repo      *repo.GormRepo
	Tokens    *token.Service
	UploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	repository := repo.New(db)
	tokens := &token.Service{Secret: []byte("test_secret")}

	authSvc := &service.AuthService{Repo: repository, Tokens: tokens}
	catalogSvc := &service.CatalogService{Repo: repository}
	orderSvc := &service.OrderService{Repo: repository}

	dir := t.TempDir()
	store, err := upload.NewStore(dir)
	require.NoError(t, err)

	e := echo.New()
	Register(e, &Deps{
		APIRoot:    apiRoot,
		Tokens:     tokens,
		Policy:     policy.New(apiRoot),
		Users:      &UserHandler{Svc: authSvc},
		Products:   &ProductHandler{Svc: catalogSvc},
		Categories: &CategoryHandler{Svc: catalogSvc},
		Orders:     &OrderHandler{Svc: orderSvc},
		Uploads:    &UploadHandler{Store: store},
		UploadDir:  dir,
	})

	return &testEnv{T: t, E: e, Repo: repository, Tokens: tokens, UploadDir: dir}
}

// do runs one request through the full middleware chain. An empty token
// sends no Authorization header.
func (env *testEnv) do(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedUser(email string, isAdmin bool) (*models.User, string) {
	env.T.Helper()

	passwordHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := &models.User{
		Username:     "test_user",
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	require.NoError(env.T, env.Repo.DB.Create(user).Error)

	raw, err := env.Tokens.Issue(user)
	require.NoError(env.T, err)
	return user, raw
}

func (env *testEnv) seedCatalog() (*models.Category, *models.Product) {
	env.T.Helper()

	category := &models.Category{Name: "shoes"}
	require.NoError(env.T, env.Repo.DB.Create(category).Error)

	product := &models.Product{
		Name:        "sneaker",
		Description: "d",
		Price:       10,
		CategoryID:  category.ID,
	}
	require.NoError(env.T, env.Repo.DB.Create(product).Error)
	return category, product
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
