package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByCustomerID(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON).Scan(&cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) GetCartByCustomerID(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, customerID).Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query, cart.ID, itemsJSON).Scan(&cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}

		return fmt.Errorf("failed to update cart: %w", err)
	}

	return nil
}

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]models.Cart // keyed by customer id
}

func NewMemoryCartRepo() CartRepository {
	return &memoryCartRepository{carts: make(map[uuid.UUID]models.Cart)}
}

func (r *memoryCartRepository) CreateCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	r.carts[cart.UserID] = cloneCart(*cart)

	return nil
}

func (r *memoryCartRepository) GetCartByCustomerID(_ context.Context, customerID uuid.UUID) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[customerID]
	if !ok {
		return nil, sql.ErrNoRows
	}

	out := cloneCart(cart)

	return &out, nil
}

func (r *memoryCartRepository) UpdateCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; !ok {
		return sql.ErrNoRows
	}

	cart.UpdatedAt = time.Now()
	r.carts[cart.UserID] = cloneCart(*cart)

	return nil
}

// cloneCart deep-copies the item map so callers never share line state with
// the store.
func cloneCart(cart models.Cart) models.Cart {
	items := make(map[string]models.CartItem, len(cart.Items))
	for k, v := range cart.Items {
		items[k] = v
	}

	cart.Items = items

	return cart
}
