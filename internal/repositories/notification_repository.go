package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	ClearNotifications(ctx context.Context) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, title, message, kind, link, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, notification.ID, notification.Title, notification.Message, notification.Kind, notification.Link).
		Scan(&notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM notifications WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *notificationRepository) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, title, message, kind, link, created_at
		FROM notifications
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification

	for rows.Next() {
		var notification models.Notification

		if err := rows.Scan(&notification.ID, &notification.Title, &notification.Message, &notification.Kind, &notification.Link, &notification.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) ClearNotifications(ctx context.Context) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	return nil
}

type memoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]models.Notification
	order         []uuid.UUID
}

func NewMemoryNotificationRepo() NotificationRepository {
	return &memoryNotificationRepository{
		notifications: make(map[uuid.UUID]models.Notification),
	}
}

func (r *memoryNotificationRepository) CreateNotification(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification.CreatedAt = time.Now()

	r.notifications[notification.ID] = *notification
	r.order = append(r.order, notification.ID)

	return nil
}

func (r *memoryNotificationRepository) DeleteNotification(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return sql.ErrNoRows
	}

	delete(r.notifications, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

func (r *memoryNotificationRepository) ListNotifications(_ context.Context) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notifications := make([]models.Notification, 0, len(r.order))
	for _, id := range r.order {
		notifications = append(notifications, r.notifications[id])
	}

	return notifications, nil
}

// ClearNotifications is last-writer-wins: a publish racing with a clear may
// or may not survive, and neither outcome is an error.
func (r *memoryNotificationRepository) ClearNotifications(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = make(map[uuid.UUID]models.Notification)
	r.order = nil

	return nil
}
