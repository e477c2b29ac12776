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

type OrderHandler struct {
	orderService *service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Start checkout for the current cart
//	@Description	Snapshots the cart into an order and settles it asynchronously. The returned order is in the processing state; poll the status endpoint for the outcome.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.CheckoutRequest	true	"Payment details"
//	@Success		202		{object}	models.Order
//	@Failure		409		{object}	response.ErrorResponse	"Checkout already in progress"
//	@Failure		400		{object}	response.ErrorResponse	"Cart is empty"
//	@Security		BearerAuth
//	@Router			/orders/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := claimsFromContext(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout accepted", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusAccepted, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := claimsFromContext(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order ID"))

			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			logger.Error("Failed to fetch order", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// GetOrderStatus godoc
//	@Summary	Poll the settlement status of an order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	models.OrderStatusResponse
//	@Security	BearerAuth
//	@Router		/orders/{id}/status [get]
func (h *OrderHandler) GetOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := claimsFromContext(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order ID"))

			return
		}

		status, err := h.orderService.GetOrderStatus(r.Context(), orderID)
		if err != nil {
			logger.Error("Failed to fetch order status", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := claimsFromContext(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orders, err := h.orderService.ListOrdersByCustomer(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
