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

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, failureReason string) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_id, cart_id, items, subtotal, shipping, tax, total, status, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.CustomerID, order.CartID, itemsJSON,
		order.Subtotal, order.Shipping, order.Tax, order.Total,
		order.Status, order.FailureReason).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, customer_id, cart_id, items, subtotal, shipping, tax, total, status, failure_reason, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&order.ID, &order.CustomerID, &order.CartID, &itemsJSON,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
			&order.Status, &order.FailureReason, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, failureReason string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $2, failure_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if _, err := r.DB.ExecContext(dbCtx, query, id, status, failureReason); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return r.GetOrderByID(ctx, id)
}

func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, customer_id, cart_id, items, subtotal, shipping, tax, total, status, failure_reason, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		var itemsJSON []byte

		if err := rows.Scan(&order.ID, &order.CustomerID, &order.CartID, &itemsJSON,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
			&order.Status, &order.FailureReason, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]models.Order
	order  []uuid.UUID
}

func NewMemoryOrderRepo() OrderRepository {
	return &memoryOrderRepository{orders: make(map[uuid.UUID]models.Order)}
}

func (r *memoryOrderRepository) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.orders[order.ID] = cloneOrder(*order)
	r.order = append(r.order, order.ID)

	return nil
}

func (r *memoryOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	out := cloneOrder(order)

	return &out, nil
}

func (r *memoryOrderRepository) UpdateOrderStatus(_ context.Context, id uuid.UUID, status models.OrderStatus, failureReason string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	order.Status = status
	order.FailureReason = failureReason
	order.UpdatedAt = time.Now()
	r.orders[id] = order

	out := cloneOrder(order)

	return &out, nil
}

func (r *memoryOrderRepository) ListOrdersByCustomer(_ context.Context, customerID uuid.UUID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order

	// newest first, matching the postgres ordering
	for i := len(r.order) - 1; i >= 0; i-- {
		order := r.orders[r.order[i]]
		if order.CustomerID == customerID {
			orders = append(orders, cloneOrder(order))
		}
	}

	return orders, nil
}

func cloneOrder(order models.Order) models.Order {
	order.Items = append([]models.OrderItem(nil), order.Items...)

	return order
}
