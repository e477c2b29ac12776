package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
)

// memoryReminderRepository keeps reminders in insertion order; edits replace
// the record in place so a reminder never changes its list position.
type memoryReminderRepository struct {
	mu        sync.RWMutex
	reminders map[uuid.UUID]models.Reminder
	order     []uuid.UUID
}

func NewMemoryReminderRepo() ReminderRepository {
	return &memoryReminderRepository{
		reminders: make(map[uuid.UUID]models.Reminder),
	}
}

func (r *memoryReminderRepository) CreateReminder(_ context.Context, reminder *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	r.reminders[reminder.ID] = cloneReminder(*reminder)
	r.order = append(r.order, reminder.ID)

	return nil
}

func (r *memoryReminderRepository) GetReminderByID(_ context.Context, id uuid.UUID) (*models.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reminder, ok := r.reminders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	out := cloneReminder(reminder)

	return &out, nil
}

func (r *memoryReminderRepository) UpdateReminder(_ context.Context, reminder *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reminders[reminder.ID]
	if !ok {
		return sql.ErrNoRows
	}

	reminder.CreatedAt = existing.CreatedAt
	reminder.UpdatedAt = time.Now()

	r.reminders[reminder.ID] = cloneReminder(*reminder)

	return nil
}

func (r *memoryReminderRepository) DeleteReminder(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reminders[id]; !ok {
		return sql.ErrNoRows
	}

	delete(r.reminders, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

func (r *memoryReminderRepository) ListReminders(_ context.Context) ([]models.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reminders := make([]models.Reminder, 0, len(r.order))

	for _, id := range r.order {
		reminders = append(reminders, cloneReminder(r.reminders[id]))
	}

	return reminders, nil
}

func cloneReminder(reminder models.Reminder) models.Reminder {
	reminder.Days = append([]string(nil), reminder.Days...)

	return reminder
}
