package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Repository bundles the per-entity stores behind one handle. The memory
// driver keeps everything in process (the deployment the storefront assumes);
// the postgres driver persists one table per entity.
type Repository struct {
	DB *sql.DB

	Reminder     ReminderRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Notification NotificationRepository
	User         UserRepository
}

func New(cfg *config.Config) (*Repository, error) {

	switch cfg.StorageDriver {

	case DriverMemory, "":
		return &Repository{
			Reminder:     NewMemoryReminderRepo(),
			Product:      NewMemoryProductRepo(SeedCatalog()),
			Cart:         NewMemoryCartRepo(),
			Order:        NewMemoryOrderRepo(),
			Notification: NewMemoryNotificationRepo(),
			User:         NewMemoryUserRepo(),
		}, nil

	case DriverPostgres:
		db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

		// Test the connection to make sure DB is reachable
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		return &Repository{
			DB:           db,
			Reminder:     NewReminderRepo(db),
			Product:      NewProductRepo(db),
			Cart:         NewCartRepo(db),
			Order:        NewOrderRepo(db),
			Notification: NewNotificationRepo(db),
			User:         NewUserRepo(db),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}
}

func (r *Repository) Close() error {
	if r.DB == nil {
		return nil
	}

	return r.DB.Close()
}
