package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/metrics"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/nikhilarora068/pharmacare-backend/pkg/sendgrid"
)

type NotificationService interface {
	Publish(ctx context.Context, event *models.NotificationEvent) (*models.Notification, error)
	ListNotifications(ctx context.Context) (*models.NotificationListResponse, error)
	Dismiss(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	emailTo      string
}

// NewNotificationService builds the feed. emailService may be nil, in which
// case notifications stay in-app only.
func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService, emailTo string) NotificationService {
	return &notificationService{repo: repo, emailService: emailService, emailTo: emailTo}
}

// Publish appends to the feed with a fresh id and the current timestamp.
func (n *notificationService) Publish(ctx context.Context, event *models.NotificationEvent) (*models.Notification, error) {

	notification := &models.Notification{
		ID:        uuid.New(),
		Title:     event.Title,
		Message:   event.Message,
		Kind:      event.Kind,
		Link:      event.Link,
		CreatedAt: time.Now(),
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, appErrors.DatabaseError("Failed to publish notification").WithError(err)
	}

	metrics.NotificationsPublished.WithLabelValues(string(event.Kind)).Inc()

	if n.emailService != nil && n.emailTo != "" {
		// Email fanout is best effort and must not block or fail the publish.
		go func() {
			req := &sendgrid.EmailRequest{
				To:      n.emailTo,
				Subject: notification.Title,
				Content: notification.Message,
			}
			if err := n.emailService.Send(context.Background(), req); err != nil {
				slog.Warn("Failed to forward notification email",
					slog.String("notificationId", notification.ID.String()),
					slog.String("error", err.Error()))
			}
		}()
	}

	return notification, nil
}

// ListNotifications returns the feed newest first; ordering is applied at
// read time, storage stays append-ordered.
func (n *notificationService) ListNotifications(ctx context.Context) (*models.NotificationListResponse, error) {

	notifications, err := n.repo.ListNotifications(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list notifications").WithError(err)
	}

	for i, j := 0, len(notifications)-1; i < j; i, j = i+1, j-1 {
		notifications[i], notifications[j] = notifications[j], notifications[i]
	}

	return &models.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	}, nil
}

func (n *notificationService) Dismiss(ctx context.Context, id uuid.UUID) error {

	err := n.repo.DeleteNotification(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Notification not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to dismiss notification").WithError(err)
	}

	return nil
}

// MarkAllRead clears the entire feed unconditionally.
func (n *notificationService) MarkAllRead(ctx context.Context) error {

	if err := n.repo.ClearNotifications(ctx); err != nil {
		return appErrors.DatabaseError("Failed to clear notifications").WithError(err)
	}

	return nil
}
