package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/nikhilarora068/pharmacare-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReminderService(mockRepo *repository.MockReminderRepository) (*service.ReminderService, service.NotificationService) {
	feed := service.NewNotificationService(repository.NewMemoryNotificationRepo(), nil, "")

	return service.NewReminderService(mockRepo, feed), feed
}

func TestCreateReminder(t *testing.T) {
	ctx := context.Background()

	validReq := &models.CreateReminderRequest{
		Name:   "Paracetamol",
		Time:   "08:30",
		Dosage: "500mg",
		Days:   []string{"Mon", "Wed", "Fri"},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("CreateReminder", ctx, mock.AnythingOfType("*models.Reminder")).Return(nil).Once()

		// Act
		reminder, err := reminderService.CreateReminder(ctx, validReq)

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, reminder)
		assert.NotEqual(t, uuid.Nil, reminder.ID)
		assert.Equal(t, "Paracetamol", reminder.Name)
		assert.Equal(t, []string{"Mon", "Wed", "Fri"}, reminder.Days)
		assert.WithinDuration(t, time.Now(), reminder.CreatedAt, time.Second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - All Field Errors Reported In One Pass", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)

		// Act
		reminder, err := reminderService.CreateReminder(ctx, &models.CreateReminderRequest{
			Name:   "",
			Time:   "25:00",
			Dosage: "",
			Days:   []string{"Funday"},
		})

		// Assert
		assert.Nil(t, reminder)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, validation.ReasonMissingField, appErr.Fields["name"])
		assert.Equal(t, validation.ReasonInvalidTime, appErr.Fields["time"])
		assert.Equal(t, validation.ReasonMissingField, appErr.Fields["dosage"])
		assert.Equal(t, validation.ReasonInvalidDay, appErr.Fields["days"])
		mockRepo.AssertNotCalled(t, "CreateReminder", mock.Anything, mock.Anything)
	})
}

func TestUpdateReminder(t *testing.T) {
	ctx := context.Background()
	reminderID := uuid.New()

	existing := &models.Reminder{
		ID:     reminderID,
		Name:   "Ibuprofen",
		Time:   "12:00",
		Dosage: "200mg",
		Days:   []string{"Tue"},
	}

	updateReq := &models.UpdateReminderRequest{
		Name:   "Ibuprofen",
		Time:   "18:45",
		Dosage: "400mg",
		Days:   []string{"Tue", "Thu"},
	}

	t.Run("Success - Full Replace Keeps ID", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("GetReminderByID", ctx, reminderID).Return(existing, nil).Once()
		mockRepo.On("UpdateReminder", ctx, mock.MatchedBy(func(r *models.Reminder) bool {
			return r.ID == reminderID && r.Time == "18:45" && r.Dosage == "400mg" && len(r.Days) == 2
		})).Return(nil).Once()

		// Act
		reminder, err := reminderService.UpdateReminder(ctx, reminderID, updateReq)

		// Assert
		assert.NoError(t, err)
		require.NotNil(t, reminder)
		assert.Equal(t, reminderID, reminder.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Reminder Not Found", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("GetReminderByID", ctx, reminderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		reminder, err := reminderService.UpdateReminder(ctx, reminderID, updateReq)

		// Assert
		assert.Nil(t, reminder)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateReminder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid Input Leaves Record Untouched", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("GetReminderByID", ctx, reminderID).Return(existing, nil).Once()

		// Act
		reminder, err := reminderService.UpdateReminder(ctx, reminderID, &models.UpdateReminderRequest{
			Name: "Ibuprofen", Time: "9:99", Dosage: "400mg", Days: []string{"Tue"},
		})

		// Assert
		assert.Nil(t, reminder)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, validation.ReasonInvalidTime, appErr.Fields["time"])
		mockRepo.AssertNotCalled(t, "UpdateReminder", mock.Anything, mock.Anything)
	})
}

func TestDeleteReminder(t *testing.T) {
	ctx := context.Background()
	reminderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("DeleteReminder", ctx, reminderID).Return(nil).Once()

		// Act
		err := reminderService.DeleteReminder(ctx, reminderID)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Deleting Absent Reminder Is Not Found", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("DeleteReminder", ctx, reminderID).Return(sql.ErrNoRows).Once()

		// Act
		err := reminderService.DeleteReminder(ctx, reminderID)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestAcknowledgeReminder(t *testing.T) {
	ctx := context.Background()
	reminderID := uuid.New()

	existing := &models.Reminder{
		ID:     reminderID,
		Name:   "Vitamin C",
		Time:   "08:00",
		Dosage: "1000mg",
		Days:   []string{"Mon"},
	}

	t.Run("Success - Publishes Without Mutating The Reminder", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, feed := newReminderService(mockRepo)
		mockRepo.On("GetReminderByID", ctx, reminderID).Return(existing, nil).Once()

		// Act
		notification, err := reminderService.AcknowledgeReminder(ctx, reminderID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, notification)
		assert.Equal(t, "Medicine Reminder", notification.Title)
		assert.Equal(t, "Time to take your Vitamin C (1000mg)", notification.Message)
		assert.Equal(t, models.NotificationKindReminder, notification.Kind)
		assert.Equal(t, "/reminders", notification.Link)
		mockRepo.AssertNotCalled(t, "UpdateReminder", mock.Anything, mock.Anything)

		list, err := feed.ListNotifications(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)
	})

	t.Run("Failure - Unknown Reminder", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		mockRepo.On("GetReminderByID", ctx, reminderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		notification, err := reminderService.AcknowledgeReminder(ctx, reminderID)

		// Assert
		assert.Nil(t, notification)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Insertion Order Preserved", func(t *testing.T) {
		mockRepo := repository.NewMockReminderRepository()
		reminderService, _ := newReminderService(mockRepo)
		stored := []models.Reminder{
			{ID: uuid.New(), Name: "First"},
			{ID: uuid.New(), Name: "Second"},
		}
		mockRepo.On("ListReminders", ctx).Return(stored, nil).Once()

		// Act
		reminders, err := reminderService.ListReminders(ctx)

		// Assert
		assert.NoError(t, err)
		require.Len(t, reminders, 2)
		assert.Equal(t, "First", reminders[0].Name)
		assert.Equal(t, "Second", reminders[1].Name)
		mockRepo.AssertExpectations(t)
	})
}
