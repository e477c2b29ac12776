package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/cache"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
)

const catalogCacheTTL = 5 * time.Minute

// CategoryAll matches every category in a catalog filter.
const CategoryAll = "All"

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

// NewProductService builds the catalog service; productCache may be nil.
func NewProductService(repo repository.ProductRepository, productCache cache.Cache) *ProductService {
	return &ProductService{repo: repo, cache: productCache}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	if s.cache != nil {
		var cached models.Product

		found, err := s.cache.Get(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), &cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("error", err.Error()))
		} else if found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.UnknownProductError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), product, catalogCacheTTL); err != nil {
			slog.Warn("Product cache write failed", slog.String("error", err.Error()))
		}
	}

	return product, nil
}

// ListProducts filters the catalog: case-insensitive substring match over
// name and description, AND category equality ("All" matches everything).
// The filter is recomputed on every call; the catalog is small.
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductListResponse, error) {

	products, err := s.listCatalog(ctx)
	if err != nil {
		return nil, err
	}

	categories := []string{CategoryAll}
	seen := map[string]bool{}

	for _, product := range products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}

	text := strings.ToLower(strings.TrimSpace(filter.Text))
	matched := make([]models.Product, 0, len(products))

	for _, product := range products {
		if !matchesText(product, text) {
			continue
		}

		if filter.Category != "" && filter.Category != CategoryAll && product.Category != filter.Category {
			continue
		}

		matched = append(matched, product)
	}

	return &models.ProductListResponse{
		Products:   matched,
		Categories: categories,
		Total:      len(matched),
	}, nil
}

func (s *ProductService) listCatalog(ctx context.Context) ([]models.Product, error) {

	if s.cache != nil {
		var cached []models.Product

		found, err := s.cache.Get(ctx, cache.CatalogKey, &cached)
		if err != nil {
			slog.Warn("Catalog cache read failed", slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CatalogKey, products, catalogCacheTTL); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, nil
}

func matchesText(product models.Product, text string) bool {
	if text == "" {
		return true
	}

	return strings.Contains(strings.ToLower(product.Name), text) ||
		strings.Contains(strings.ToLower(product.Description), text)
}
