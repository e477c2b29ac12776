package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService() *service.ProductService {
	return service.NewProductService(repository.NewMemoryProductRepo(repository.SeedCatalog()), nil)
}

func TestGetProduct(t *testing.T) {
	productService := newProductService()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Act
		product, err := productService.GetProduct(ctx, seedProductID(t, "Paracetamol"))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Paracetamol", product.Name)
		assert.Equal(t, 8.99, product.Price)
		assert.Equal(t, "Pain Relief", product.Category)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Act
		product, err := productService.GetProduct(ctx, uuid.New())

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnknownProduct, appErr.Code)
	})
}

func TestListProducts(t *testing.T) {
	productService := newProductService()
	ctx := context.Background()

	t.Run("Success - No Filter Returns Full Catalog", func(t *testing.T) {
		// Act
		resp, err := productService.ListProducts(ctx, models.ProductFilter{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 6, resp.Total)
		assert.Equal(t, []string{"All", "Pain Relief", "Vitamins", "First Aid", "Personal Care"}, resp.Categories)
	})

	t.Run("Success - Text Matches Name Or Description", func(t *testing.T) {
		// Act: "germs" only appears in Hand Sanitizer's description
		resp, err := productService.ListProducts(ctx, models.ProductFilter{Text: "GERMS"})

		// Assert
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "Hand Sanitizer", resp.Products[0].Name)
	})

	t.Run("Success - Category Filter", func(t *testing.T) {
		// Act
		resp, err := productService.ListProducts(ctx, models.ProductFilter{Category: "Vitamins"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)

		for _, product := range resp.Products {
			assert.Equal(t, "Vitamins", product.Category)
		}
	})

	t.Run("Success - All Category Matches Everything", func(t *testing.T) {
		// Act
		resp, err := productService.ListProducts(ctx, models.ProductFilter{Category: "All"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 6, resp.Total)
	})

	t.Run("Success - Text And Category Combine", func(t *testing.T) {
		// Act
		resp, err := productService.ListProducts(ctx, models.ProductFilter{Text: "pain", Category: "Pain Relief"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("Success - No Match", func(t *testing.T) {
		// Act
		resp, err := productService.ListProducts(ctx, models.ProductFilter{Text: "no such product"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.Empty(t, resp.Products)
	})
}
