package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils"
)

type ReminderRepository interface {
	CreateReminder(ctx context.Context, reminder *models.Reminder) error
	GetReminderByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *models.Reminder) error
	DeleteReminder(ctx context.Context, id uuid.UUID) error
	ListReminders(ctx context.Context) ([]models.Reminder, error)
}

type reminderRepository struct {
	DB *sql.DB
}

func NewReminderRepo(db *sql.DB) ReminderRepository {
	return &reminderRepository{DB: db}
}

func (r *reminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reminders (id, name, time_of_day, dosage, days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, reminder.ID, reminder.Name, reminder.Time, reminder.Dosage, pq.Array(reminder.Days)).
		Scan(&reminder.CreatedAt, &reminder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

func (r *reminderRepository) GetReminderByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, time_of_day, dosage, days, created_at, updated_at
		FROM reminders
		WHERE id = $1
	`

	reminder := &models.Reminder{}

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&reminder.ID, &reminder.Name, &reminder.Time, &reminder.Dosage, pq.Array(&reminder.Days), &reminder.CreatedAt, &reminder.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return reminder, nil
}

func (r *reminderRepository) UpdateReminder(ctx context.Context, reminder *models.Reminder) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reminders
		SET name = $2, time_of_day = $3, dosage = $4, days = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, reminder.ID, reminder.Name, reminder.Time, reminder.Dosage, pq.Array(reminder.Days)).
		Scan(&reminder.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}

		return fmt.Errorf("failed to update reminder: %w", err)
	}

	return nil
}

func (r *reminderRepository) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM reminders WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
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

func (r *reminderRepository) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, time_of_day, dosage, days, created_at, updated_at
		FROM reminders
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder

	for rows.Next() {
		var reminder models.Reminder

		if err := rows.Scan(&reminder.ID, &reminder.Name, &reminder.Time, &reminder.Dosage, pq.Array(&reminder.Days), &reminder.CreatedAt, &reminder.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}
