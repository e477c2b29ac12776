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

func newFeed() service.NotificationService {
	return service.NewNotificationService(repository.NewMemoryNotificationRepo(), nil, "")
}

func publish(t *testing.T, feed service.NotificationService, title string) *models.Notification {
	t.Helper()

	notification, err := feed.Publish(context.Background(), &models.NotificationEvent{
		Title:   title,
		Message: "message for " + title,
		Kind:    models.NotificationKindInfo,
	})
	require.NoError(t, err)

	return notification
}

func TestPublishAndList(t *testing.T) {
	feed := newFeed()
	ctx := context.Background()

	publish(t, feed, "first")
	publish(t, feed, "second")
	publish(t, feed, "third")

	// Act
	list, err := feed.ListNotifications(ctx)

	// Assert: newest first
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "third", list.Notifications[0].Title)
	assert.Equal(t, "second", list.Notifications[1].Title)
	assert.Equal(t, "first", list.Notifications[2].Title)
}

func TestDismiss(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Removal Keeps Order Of The Rest", func(t *testing.T) {
		feed := newFeed()
		publish(t, feed, "first")
		middle := publish(t, feed, "second")
		publish(t, feed, "third")

		// Act
		err := feed.Dismiss(ctx, middle.ID)

		// Assert
		assert.NoError(t, err)

		list, err := feed.ListNotifications(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, "third", list.Notifications[0].Title)
		assert.Equal(t, "first", list.Notifications[1].Title)
	})

	t.Run("Failure - Dismissing Absent Notification Is Not Found", func(t *testing.T) {
		feed := newFeed()

		// Act
		err := feed.Dismiss(ctx, uuid.New())

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Clears The Whole Feed", func(t *testing.T) {
		feed := newFeed()
		publish(t, feed, "first")
		publish(t, feed, "second")

		// Act
		err := feed.MarkAllRead(ctx)

		// Assert
		assert.NoError(t, err)

		list, err := feed.ListNotifications(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, list.Total)
	})

	t.Run("Success - Clearing An Empty Feed Succeeds", func(t *testing.T) {
		feed := newFeed()

		// Act
		err := feed.MarkAllRead(ctx)

		// Assert
		assert.NoError(t, err)
	})
}
