package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velmart/storefront/internal/config"
	"github.com/velmart/storefront/internal/hash"
	"github.com/velmart/storefront/internal/models"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/token"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return repo.New(db)
}

func newTestTokens() *token.Service {
	return &token.Service{Secret: []byte("test_secret")}
}

func seedUser(t *testing.T, r *repo.GormRepo, email string, isAdmin bool) *models.User {
	t.Helper()

	passwordHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{
		Username:     "test_user",
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, r *repo.GormRepo, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, r.DB.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, categoryID uint) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "test_description",
		Price:       price,
		CategoryID:  categoryID,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}
