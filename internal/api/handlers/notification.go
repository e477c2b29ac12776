package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/api/middleware"
	"github.com/nikhilarora068/pharmacare-backend/internal/errors"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
//	@Summary	List notifications, newest first
//	@Tags		Notifications
//	@Produce	json
//	@Success	200	{object}	models.NotificationListResponse
//	@Security	BearerAuth
//	@Router		/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := claimsFromContext(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		list, err := h.notificationService.ListNotifications(r.Context())
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

func (h *NotificationHandler) Dismiss() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := claimsFromContext(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		notificationID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid notification ID"))

			return
		}

		if err := h.notificationService.Dismiss(r.Context(), notificationID); err != nil {
			logger.Error("Failed to dismiss notification", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "Notification dismissed"})
	}
}

func (h *NotificationHandler) MarkAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := claimsFromContext(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if err := h.notificationService.MarkAllRead(r.Context()); err != nil {
			logger.Error("Failed to clear notifications", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "All notifications cleared"})
	}
}
