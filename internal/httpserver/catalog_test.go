package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velmart/storefront/internal/models"
)

func TestCatalogWritesAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.seedUser("user@example.com", false)
	_, adminToken := env.seedUser("admin@example.com", true)
	category, product := env.seedCatalog()

	payload := map[string]any{
		"name":       "boot",
		"price":      20,
		"categoryId": category.ID,
	}

	requireStatus(t, env.do(http.MethodPost, apiRoot+"/products", payload, ""), http.StatusUnauthorized)
	requireStatus(t, env.do(http.MethodPost, apiRoot+"/products", payload, userToken), http.StatusForbidden)
	requireStatus(t, env.do(http.MethodPost, apiRoot+"/products", payload, adminToken), http.StatusCreated)

	requireStatus(t, env.do(http.MethodDelete, apiRoot+"/products/"+itoa(product.ID), nil, userToken), http.StatusForbidden)
	requireStatus(t, env.do(http.MethodDelete, apiRoot+"/products/"+itoa(product.ID), nil, adminToken), http.StatusOK)

	requireStatus(t, env.do(http.MethodPost, apiRoot+"/categories", map[string]any{"name": "hats"}, userToken), http.StatusForbidden)
	requireStatus(t, env.do(http.MethodPost, apiRoot+"/categories", map[string]any{"name": "hats"}, adminToken), http.StatusCreated)
}

func TestProductReadsArePublic(t *testing.T) {
	env := newTestEnv(t)
	_, product := env.seedCatalog()

	rec := env.do(http.MethodGet, apiRoot+"/products", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.Product](t, rec), 1)

	rec = env.do(http.MethodGet, apiRoot+"/products/"+itoa(product.ID), nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, product.Name, decode[models.Product](t, rec).Name)

	requireStatus(t, env.do(http.MethodGet, apiRoot+"/products/9999", nil, ""), http.StatusNotFound)

	rec = env.do(http.MethodGet, apiRoot+"/products/count", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.JSONEq(t, `{"productCount":1}`, rec.Body.String())
}

func TestLatestProductsQuery(t *testing.T) {
	env := newTestEnv(t)
	_, product := env.seedCatalog()

	rec := env.do(http.MethodGet, apiRoot+"/products/latest?limit=4&exclude="+itoa(product.ID), nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Empty(t, decode[[]models.Product](t, rec))

	rec = env.do(http.MethodGet, apiRoot+"/products/latest", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.Product](t, rec), 1)
}

func TestCategoriesEmptyListIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, apiRoot+"/categories", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestProductCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog() // category "shoes" with one product

	rec := env.do(http.MethodGet, apiRoot+"/products?categories=SHOES", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, decode[[]models.Product](t, rec), 1)

	rec = env.do(http.MethodGet, apiRoot+"/products?categories=unknown", nil, "")
	requireStatus(t, rec, http.StatusOK)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchUnavailableWithoutBackend(t *testing.T) {
	env := newTestEnv(t)

	requireStatus(t, env.do(http.MethodGet, apiRoot+"/products/search?q=boot", nil, ""), http.StatusServiceUnavailable)
}
