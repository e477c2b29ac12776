package models

import (
	"time"

	"github.com/google/uuid"
)

// DaysOfWeek is the fixed ordering used for reminder schedules.
var DaysOfWeek = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Time      string    `json:"time"` // 24-hour HH:MM
	Dosage    string    `json:"dosage"`
	Days      []string  `json:"days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateReminderRequest struct {
	Name   string   `json:"name" validate:"required"`
	Time   string   `json:"time" validate:"required,datetime=15:04"`
	Dosage string   `json:"dosage" validate:"required"`
	Days   []string `json:"days" validate:"required,min=1,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
}

// UpdateReminderRequest replaces every mutable field; the id is immutable.
type UpdateReminderRequest struct {
	Name   string   `json:"name" validate:"required"`
	Time   string   `json:"time" validate:"required,datetime=15:04"`
	Dosage string   `json:"dosage" validate:"required"`
	Days   []string `json:"days" validate:"required,min=1,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
}
