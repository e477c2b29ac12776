package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nikhilarora068/pharmacare-backend/internal/api/middleware"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils"
	"github.com/nikhilarora068/pharmacare-backend/internal/utils/response"
)

type ContactHandler struct {
	contactService *service.ContactService
	validator      *validator.Validate
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService, validator: validator.New()}
}

func (h *ContactHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if _, err := h.contactService.Submit(r.Context(), &req); err != nil {
			logger.Error("Failed to record contact message", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, map[string]string{"message": "Message received"})
	}
}
