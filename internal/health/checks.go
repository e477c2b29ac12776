package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
)

// NewHealthHandler registers liveness checks for the backends that are
// actually configured. With the in-memory driver and no Redis the
// endpoint reports only service identity and system info.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	options := []health.Option{
		health.WithComponent(health.Component{
			Name:    "pharmacare-backend",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
	}

	if cfg.StorageDriver == repository.DriverPostgres {
		options = append(options, health.WithChecks(health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		}))
	}

	if cfg.RedisConnect.Addr != "" {
		options = append(options, health.WithChecks(health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		}))
	}

	if cfg.SendGrid.APIKey != "" {
		options = append(options, health.WithChecks(health.Config{
			Name:      "sendgrid",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if cfg.SendGrid.FromEmail == "" {
					return fmt.Errorf("sendgrid sender address is not configured")
				}
				return nil
			},
		}))
	}

	h, err := health.New(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
