package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/velmart/storefront/internal/events"
	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/models"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/search"
	"github.com/velmart/storefront/internal/transport"
)

const defaultDescription = "No description provided"

const maxStock = 100

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

// NormalizeImagePath reduces any image reference to a storage-relative
// path: full URLs lose their origin, leading slashes are stripped.
func NormalizeImagePath(input string) string {
	value := strings.TrimSpace(input)
	if value == "" {
		return ""
	}
	if u, err := url.Parse(value); err == nil && u.Host != "" {
		value = u.Path
	}
	return strings.TrimLeft(value, "/")
}

func normalizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if v := NormalizeImagePath(img); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// Products lists the catalog; categoriesCSV is the raw comma-separated
// filter from the query string, empty for no filter.
func (s *CatalogService) Products(ctx context.Context, categoriesCSV string) ([]models.Product, error) {
	var names []string
	if categoriesCSV != "" {
		names = strings.Split(categoriesCSV, ",")
	}
	return s.Repo.Products(ctx, names)
}

func (s *CatalogService) LatestProducts(ctx context.Context, limit int, excludeID uint) ([]models.Product, error) {
	if limit < 1 {
		limit = 4
	}
	return s.Repo.LatestProducts(ctx, limit, excludeID)
}

func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.Repo.CountProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock > maxStock {
		return nil, fmt.Errorf("%w: stock must be between 0 and %d", ErrValidation, maxStock)
	}
	if req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if _, err := s.Repo.CategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category", ErrBadReference)
		}
		return nil, err
	}

	description := req.Description
	if strings.TrimSpace(description) == "" {
		description = defaultDescription
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: description,
		Image:       NormalizeImagePath(req.Image),
		Images:      normalizeImages(req.Images),
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: product name is required", ErrValidation)
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = NormalizeImagePath(*req.Image)
	}
	if req.Images != nil {
		product.Images = normalizeImages(req.Images)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock > maxStock {
			return nil, fmt.Errorf("%w: stock must be between 0 and %d", ErrValidation, maxStock)
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.CategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown category", ErrBadReference)
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
		product.Category = nil
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, s.Index, id); err != nil {
			logging.FromContext(ctx).Warn("search deindex failed", "productID", id, "error", err)
		}
	}
	s.Producer.Publish(ctx, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

// index pushes the product into the search index best-effort; catalog
// writes never fail on search backend trouble.
func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.Index, product); err != nil {
		logging.FromContext(ctx).Warn("search index failed", "productID", product.ID, "error", err)
	}
}

func (s *CatalogService) Category(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	category := &models.Category{
		Name:  strings.TrimSpace(req.Name),
		Image: NormalizeImagePath(req.Image),
	}
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req transport.CategoryRequest) (*models.Category, error) {
	category, err := s.Repo.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		category.Name = strings.TrimSpace(req.Name)
	}
	if req.Image != "" {
		category.Image = NormalizeImagePath(req.Image)
	}
	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
