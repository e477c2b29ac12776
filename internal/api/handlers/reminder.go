package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/api/middleware"
	"github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils/response"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
	validator       *validator.Validate
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, validator: validator.New()}
}

// CreateReminder godoc
//	@Summary		Create a medication reminder
//	@Description	Creates a reminder with a 24-hour time and a non-empty day-of-week set.
//	@Tags			Reminders
//	@Accept			json
//	@Produce		json
//	@Param			reminder	body		models.CreateReminderRequest	true	"Reminder details"
//	@Success		201			{object}	models.Reminder
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Router			/reminders [post]
func (h *ReminderHandler) CreateReminder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateReminderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		reminder, err := h.reminderService.CreateReminder(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create reminder", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Reminder created", slog.String("reminderId", reminder.ID.String()))
		response.Success(w, http.StatusCreated, reminder)
	}
}

func (h *ReminderHandler) UpdateReminder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid reminder ID"))

			return
		}

		var req models.UpdateReminderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		reminder, err := h.reminderService.UpdateReminder(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update reminder", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Reminder updated", slog.String("reminderId", reminder.ID.String()))
		response.Success(w, http.StatusOK, reminder)
	}
}

func (h *ReminderHandler) DeleteReminder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid reminder ID"))

			return
		}

		if err := h.reminderService.DeleteReminder(r.Context(), id); err != nil {
			logger.Error("Failed to delete reminder", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Reminder deleted", slog.String("reminderId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}
}

// AcknowledgeReminder emits a reminder notification; the reminder record
// itself is not modified.
func (h *ReminderHandler) AcknowledgeReminder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid reminder ID"))

			return
		}

		notification, err := h.reminderService.AcknowledgeReminder(r.Context(), id)
		if err != nil {
			logger.Error("Failed to acknowledge reminder", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, notification)
	}
}

func (h *ReminderHandler) ListReminders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		reminders, err := h.reminderService.ListReminders(r.Context())
		if err != nil {
			logger.Error("Failed to list reminders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, reminders)
	}
}
