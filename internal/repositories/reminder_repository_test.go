package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReminderRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewReminderRepo(db)
	assert.NotNil(t, repo, "NewReminderRepo should return a non-nil repository")
}

func TestReminderRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewReminderRepo(db)
	ctx := context.Background()

	reminderID := uuid.New()
	days := []string{"Mon", "Wed", "Fri"}

	t.Run("CreateReminder_Success", func(t *testing.T) {
		// Arrange
		reminder := &models.Reminder{
			ID:     reminderID,
			Name:   "Paracetamol",
			Time:   "08:30",
			Dosage: "500mg",
			Days:   days,
		}
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO reminders`).
			WithArgs(reminder.ID, reminder.Name, reminder.Time, reminder.Dosage, pq.Array(reminder.Days)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateReminder(ctx, reminder)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, reminder.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateReminder_Error", func(t *testing.T) {
		// Arrange
		reminder := &models.Reminder{ID: uuid.New(), Name: "Ibuprofen", Time: "12:00", Dosage: "200mg", Days: days}
		dbError := errors.New("database insertion error")

		mock.ExpectQuery(`INSERT INTO reminders`).
			WithArgs(reminder.ID, reminder.Name, reminder.Time, reminder.Dosage, pq.Array(reminder.Days)).
			WillReturnError(dbError)

		// Act
		err := repo.CreateReminder(ctx, reminder)

		// Assert
		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetReminderByID_Success", func(t *testing.T) {
		// Arrange
		now := time.Now()

		mock.ExpectQuery(`SELECT id, name, time_of_day, dosage, days, created_at, updated_at`).
			WithArgs(reminderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "time_of_day", "dosage", "days", "created_at", "updated_at"}).
				AddRow(reminderID, "Paracetamol", "08:30", "500mg", pq.Array(days), now, now))

		// Act
		reminder, err := repo.GetReminderByID(ctx, reminderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, reminderID, reminder.ID)
		assert.Equal(t, "08:30", reminder.Time)
		assert.Equal(t, days, reminder.Days)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetReminderByID_NotFound", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, name, time_of_day, dosage, days, created_at, updated_at`).
			WithArgs(reminderID).
			WillReturnError(sql.ErrNoRows)

		// Act
		reminder, err := repo.GetReminderByID(ctx, reminderID)

		// Assert
		assert.Nil(t, reminder)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateReminder_Success", func(t *testing.T) {
		// Arrange
		reminder := &models.Reminder{ID: reminderID, Name: "Paracetamol", Time: "18:45", Dosage: "1000mg", Days: days}

		mock.ExpectQuery(`UPDATE reminders`).
			WithArgs(reminder.ID, reminder.Name, reminder.Time, reminder.Dosage, pq.Array(reminder.Days)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

		// Act
		err := repo.UpdateReminder(ctx, reminder)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteReminder_Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`DELETE FROM reminders WHERE id = \$1`).
			WithArgs(reminderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.DeleteReminder(ctx, reminderID)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteReminder_NotFound", func(t *testing.T) {
		// Arrange: zero rows affected maps to sql.ErrNoRows
		mock.ExpectExec(`DELETE FROM reminders WHERE id = \$1`).
			WithArgs(reminderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.DeleteReminder(ctx, reminderID)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListReminders_Success", func(t *testing.T) {
		// Arrange
		now := time.Now()
		secondID := uuid.New()

		mock.ExpectQuery(`ORDER BY created_at ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "time_of_day", "dosage", "days", "created_at", "updated_at"}).
				AddRow(reminderID, "Paracetamol", "08:30", "500mg", pq.Array(days), now, now).
				AddRow(secondID, "Vitamin C", "09:00", "1000mg", pq.Array([]string{"Sun"}), now, now))

		// Act
		reminders, err := repo.ListReminders(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, reminders, 2)
		assert.Equal(t, "Paracetamol", reminders[0].Name)
		assert.Equal(t, "Vitamin C", reminders[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
