package health_test

import (
	"context"
	"testing"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	"github.com/nikhilarora068/pharmacare-backend/internal/health"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {

	t.Run("Success - Memory Driver Reports Healthy", func(t *testing.T) {
		cfg := &config.Config{StorageDriver: repository.DriverMemory}

		// Act
		h, err := health.NewHealthHandler(cfg)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, h)

		check := h.Measure(context.Background())
		assert.Equal(t, healthgo.StatusOK, check.Status)
	})

	t.Run("Success - Postgres Driver Registers Database Check", func(t *testing.T) {
		cfg := &config.Config{
			StorageDriver: repository.DriverPostgres,
			Database: config.Database{
				Host:    "localhost",
				Port:    "5432",
				User:    "pharmacare",
				Name:    "pharmacare",
				SSLMode: "disable",
			},
		}

		// Act
		h, err := health.NewHealthHandler(cfg)

		// Assert: construction wires the check without touching the database.
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.NotNil(t, h.Handler())
	})
}
