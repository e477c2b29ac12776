package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/nikhilarora068/pharmacare-backend/internal/validation"
)

type ReminderService struct {
	repo repository.ReminderRepository
	feed NotificationService
}

func NewReminderService(repo repository.ReminderRepository, feed NotificationService) *ReminderService {
	return &ReminderService{repo: repo, feed: feed}
}

func (s *ReminderService) CreateReminder(ctx context.Context, req *models.CreateReminderRequest) (*models.Reminder, error) {

	if errs := validation.ValidateReminderInput(req.Name, req.Time, req.Dosage, req.Days); !errs.Empty() {
		return nil, appErrors.ValidationError("Invalid reminder input").WithFields(errs)
	}

	reminder := &models.Reminder{
		ID:        uuid.New(),
		Name:      req.Name,
		Time:      req.Time,
		Dosage:    req.Dosage,
		Days:      append([]string(nil), req.Days...),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, appErrors.DatabaseError("Failed to create reminder").WithError(err)
	}

	return reminder, nil
}

// UpdateReminder replaces every mutable field while keeping the id and list
// position. Validation failures leave the stored reminder untouched.
func (s *ReminderService) UpdateReminder(ctx context.Context, id uuid.UUID, req *models.UpdateReminderRequest) (*models.Reminder, error) {

	existing, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Reminder not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch reminder").WithError(err)
	}

	if errs := validation.ValidateReminderInput(req.Name, req.Time, req.Dosage, req.Days); !errs.Empty() {
		return nil, appErrors.ValidationError("Invalid reminder input").WithFields(errs)
	}

	existing.Name = req.Name
	existing.Time = req.Time
	existing.Dosage = req.Dosage
	existing.Days = append([]string(nil), req.Days...)

	if err := s.repo.UpdateReminder(ctx, existing); err != nil {
		return nil, appErrors.DatabaseError("Failed to update reminder").WithError(err)
	}

	return existing, nil
}

// DeleteReminder is not idempotent: deleting an absent id is NotFound.
func (s *ReminderService) DeleteReminder(ctx context.Context, id uuid.UUID) error {

	err := s.repo.DeleteReminder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Reminder not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete reminder").WithError(err)
	}

	return nil
}

// AcknowledgeReminder emits a reminder-kind notification without changing the
// reminder record; no last-taken timestamp is kept.
func (s *ReminderService) AcknowledgeReminder(ctx context.Context, id uuid.UUID) (*models.Notification, error) {

	reminder, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Reminder not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch reminder").WithError(err)
	}

	event := &models.NotificationEvent{
		Title:   "Medicine Reminder",
		Message: fmt.Sprintf("Time to take your %s (%s)", reminder.Name, reminder.Dosage),
		Kind:    models.NotificationKindReminder,
		Link:    "/reminders",
	}

	return s.feed.Publish(ctx, event)
}

func (s *ReminderService) ListReminders(ctx context.Context) ([]models.Reminder, error) {

	reminders, err := s.repo.ListReminders(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list reminders").WithError(err)
	}

	return reminders, nil
}
