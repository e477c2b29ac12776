package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/metrics"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	"github.com/nikhilarora068/pharmacare-backend/internal/validation"
)

// OrderService runs the checkout lifecycle: a non-empty cart is snapshotted
// into a processing order, settled asynchronously, and the cart is cleared
// only when the order reaches succeeded. The in-flight set serializes
// checkouts per cart.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	cartService *CartService
	feed        NotificationService
	processor   PaymentProcessor
	checkout    config.Checkout

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{} // cart ids with a submission in progress
	done     sync.WaitGroup
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	cartService *CartService,
	feed NotificationService,
	processor PaymentProcessor,
	checkout config.Checkout,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		cartService: cartService,
		feed:        feed,
		processor:   processor,
		checkout:    checkout,
		inFlight:    make(map[uuid.UUID]struct{}),
	}
}

// Checkout snapshots the customer's cart into a new processing order and
// starts settlement. It returns immediately; callers poll GetOrderStatus.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.EmptyCartError("Cannot checkout an empty cart").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.EmptyCartError("Cannot checkout an empty cart")
	}

	if !s.acquire(cart.ID) {
		return nil, appErrors.AlreadyProcessingError("A checkout for this cart is already in progress")
	}

	card := &PaymentCard{
		Name:   req.NameOnCard,
		Number: validation.NormalizeCardNumber(req.CardNumber),
		Expiry: validation.NormalizeExpiry(req.ExpiryDate),
		CVC:    req.CVC,
	}

	order := s.snapshotOrder(customerID, cart)

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.release(cart.ID)

		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	s.done.Add(1)

	go s.settle(order, cart, card)

	return order, nil
}

// settle runs the payment step and applies the terminal transition. The lock
// on the cart is held until the transition (and cart clear, on success) has
// been applied, so a retry always observes the final state.
func (s *OrderService) settle(order *models.Order, cart *models.Cart, card *PaymentCard) {
	defer s.done.Done()
	defer s.release(cart.ID)

	// The request context is gone by now; processing is bounded on its own.
	ctx, cancel := context.WithTimeout(context.Background(), s.checkout.ProcessingTimeout)
	defer cancel()

	logger := slog.Default().With(
		slog.String("orderId", order.ID.String()),
		slog.String("cartId", cart.ID.String()),
	)

	if err := s.processor.Process(ctx, order, card); err != nil {
		logger.Warn("Order processing failed", slog.String("error", err.Error()))
		metrics.OrdersProcessed.WithLabelValues(string(models.OrderStatusFailed)).Inc()

		// The cart is left untouched so the customer can retry.
		if _, updateErr := s.orderRepo.UpdateOrderStatus(ctx, order.ID, models.OrderStatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record order failure", slog.String("error", updateErr.Error()))
		}

		return
	}

	// The success transition lands before the cart clear, so a reader never
	// sees an emptied cart against a still-processing order.
	if _, err := s.orderRepo.UpdateOrderStatus(ctx, order.ID, models.OrderStatusSucceeded, ""); err != nil {
		logger.Error("Failed to record order success", slog.String("error", err.Error()))

		return
	}

	cart.Items = make(map[string]models.CartItem)
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		logger.Error("Failed to clear cart after successful order", slog.String("error", err.Error()))
	}

	metrics.OrdersProcessed.WithLabelValues(string(models.OrderStatusSucceeded)).Inc()
	logger.Info("Order processed successfully")

	event := &models.NotificationEvent{
		Title:   "Order Confirmed",
		Message: "Your order #" + shortOrderRef(order.ID) + " has been placed successfully",
		Kind:    models.NotificationKindOrder,
		Link:    "/profile",
	}

	if _, err := s.feed.Publish(context.Background(), event); err != nil {
		logger.Warn("Failed to publish order notification", slog.String("error", err.Error()))
	}
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) GetOrderStatus(ctx context.Context, id uuid.UUID) (*models.OrderStatusResponse, error) {

	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.OrderStatusResponse{ID: order.ID, Status: order.Status}, nil
}

func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) (*models.OrderHistoryResponse, error) {

	orders, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderHistoryResponse{Orders: orders, Total: len(orders)}, nil
}

// Wait blocks until every in-flight settlement has finished. Used on
// shutdown and by tests.
func (s *OrderService) Wait() {
	s.done.Wait()
}

func (s *OrderService) acquire(cartID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[cartID]; busy {
		return false
	}

	s.inFlight[cartID] = struct{}{}

	return true
}

func (s *OrderService) release(cartID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, cartID)
}

// snapshotOrder copies the cart lines so later cart edits cannot reach an
// in-flight order. Lines are ordered by product name for stable output.
func (s *OrderService) snapshotOrder(customerID uuid.UUID, cart *models.Cart) *models.Order {

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	totals := s.cartService.ComputeTotals(cart.Items)

	return &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		CartID:     cart.ID,
		Items:      items,
		Subtotal:   totals.Subtotal,
		Shipping:   totals.Shipping,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Status:     models.OrderStatusProcessing,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func shortOrderRef(id uuid.UUID) string {
	ref := id.String()

	return ref[:8]
}
