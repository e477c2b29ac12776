package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
	service "github.com/nikhilarora068/pharmacare-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	orderService *service.OrderService
	cartService  *service.CartService
	feed         service.NotificationService
	customerID   uuid.UUID
}

func newCheckoutFixture(t *testing.T, processor service.PaymentProcessor) *checkoutFixture {
	t.Helper()

	cartRepo := repository.NewMemoryCartRepo()
	productRepo := repository.NewMemoryProductRepo(repository.SeedCatalog())
	cartService := service.NewCartService(cartRepo, productRepo, testPricing)
	feed := service.NewNotificationService(repository.NewMemoryNotificationRepo(), nil, "")

	orderService := service.NewOrderService(
		repository.NewMemoryOrderRepo(),
		cartRepo,
		cartService,
		feed,
		processor,
		config.Checkout{ProcessingDelay: 0, ProcessingTimeout: 5 * time.Second},
	)

	return &checkoutFixture{
		orderService: orderService,
		cartService:  cartService,
		feed:         feed,
		customerID:   uuid.New(),
	}
}

func (f *checkoutFixture) fillCart(t *testing.T) {
	t.Helper()

	_, err := f.cartService.AddItem(context.Background(), f.customerID,
		&models.AddItemRequest{ProductID: seedProductID(t, "Paracetamol"), Quantity: 2})
	require.NoError(t, err)
	_, err = f.cartService.AddItem(context.Background(), f.customerID,
		&models.AddItemRequest{ProductID: seedProductID(t, "Vitamin C"), Quantity: 1})
	require.NoError(t, err)
}

// clearObservingCartRepo snapshots the customer's order status at the moment
// the cart is emptied.
type clearObservingCartRepo struct {
	repository.CartRepository
	orderRepo     repository.OrderRepository
	customerID    uuid.UUID
	statusAtClear models.OrderStatus
}

func (r *clearObservingCartRepo) UpdateCart(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		if orders, err := r.orderRepo.ListOrdersByCustomer(ctx, r.customerID); err == nil && len(orders) == 1 {
			r.statusAtClear = orders[0].Status
		}
	}

	return r.CartRepository.UpdateCart(ctx, cart)
}

var testCheckoutReq = &models.CheckoutRequest{
	NameOnCard: "Jane Doe",
	CardNumber: "4242424242424242",
	ExpiryDate: "12/30",
	CVC:        "123",
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - No Cart", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(0))

		// Act
		order, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)

		// Assert
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Failure - Cart Exists But Is Empty", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(0))
		_, err := f.cartService.GetCart(ctx, f.customerID)
		require.NoError(t, err)

		// Act
		order, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)

		// Assert
		assert.Nil(t, order)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Success - Order Settles And Cart Is Cleared", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(0))
		f.fillCart(t)

		// Act
		order, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)

		// Assert: accepted response is the processing snapshot
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)
		assert.Len(t, order.Items, 2)
		assert.InDelta(t, 30.47, order.Subtotal, 1e-9)
		assert.InDelta(t, 5.99, order.Shipping, 1e-9)
		assert.InDelta(t, 30.47*0.07, order.Tax, 1e-9)

		// Items are sorted by name in the snapshot
		assert.Equal(t, "Paracetamol", order.Items[0].Name)
		assert.Equal(t, "Vitamin C", order.Items[1].Name)

		f.orderService.Wait()

		settled, err := f.orderService.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusSucceeded, settled.Status)
		assert.Empty(t, settled.FailureReason)

		cart, err := f.cartService.GetCart(ctx, f.customerID)
		require.NoError(t, err)
		assert.Empty(t, cart.Cart.Items)

		// A confirmation lands on the feed
		feed, err := f.feed.ListNotifications(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, feed.Total)
		assert.Equal(t, "Order Confirmed", feed.Notifications[0].Title)
		assert.Equal(t, models.NotificationKindOrder, feed.Notifications[0].Kind)
	})

	t.Run("Failure - Processor Error Leaves Cart Untouched", func(t *testing.T) {
		processor := &service.SimulatedProcessor{Err: errors.New("card declined")}
		f := newCheckoutFixture(t, processor)
		f.fillCart(t)

		// Act
		order, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		require.NoError(t, err)

		f.orderService.Wait()

		// Assert
		settled, err := f.orderService.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusFailed, settled.Status)
		assert.NotEmpty(t, settled.FailureReason)

		cart, err := f.cartService.GetCart(ctx, f.customerID)
		require.NoError(t, err)
		assert.Len(t, cart.Cart.Items, 2)

		feed, err := f.feed.ListNotifications(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, feed.Total)
	})

	t.Run("Failure - Concurrent Checkout For Same Cart Conflicts", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(200*time.Millisecond))
		f.fillCart(t)

		// Act
		first, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)

		// Assert
		assert.Nil(t, second)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeAlreadyProcessing, appErr.Code)

		f.orderService.Wait()

		// After settlement the cart is emptied, so a retry hits the
		// empty-cart rule instead of the conflict.
		third, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		assert.Nil(t, third)
		appErr, ok = appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Success - Status Transition Lands Before Cart Clear", func(t *testing.T) {
		cartRepo := repository.NewMemoryCartRepo()
		orderRepo := repository.NewMemoryOrderRepo()
		customerID := uuid.New()

		observer := &clearObservingCartRepo{
			CartRepository: cartRepo,
			orderRepo:      orderRepo,
			customerID:     customerID,
		}

		cartService := service.NewCartService(observer, repository.NewMemoryProductRepo(repository.SeedCatalog()), testPricing)
		feed := service.NewNotificationService(repository.NewMemoryNotificationRepo(), nil, "")
		orderService := service.NewOrderService(
			orderRepo,
			observer,
			cartService,
			feed,
			service.NewSimulatedProcessor(0),
			config.Checkout{ProcessingDelay: 0, ProcessingTimeout: 5 * time.Second},
		)

		_, err := cartService.AddItem(ctx, customerID,
			&models.AddItemRequest{ProductID: seedProductID(t, "Paracetamol"), Quantity: 1})
		require.NoError(t, err)

		// Act
		order, err := orderService.Checkout(ctx, customerID, testCheckoutReq)
		require.NoError(t, err)

		orderService.Wait()

		// Assert: by the time the cart was emptied the order was already
		// succeeded, so no reader can pair a cleared cart with a
		// still-processing order.
		assert.Equal(t, models.OrderStatusSucceeded, observer.statusAtClear)

		settled, err := orderService.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusSucceeded, settled.Status)

		cart, err := cartService.GetCart(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, cart.Cart.Items)
	})

	t.Run("Success - Retry After Failure Uses Same Cart", func(t *testing.T) {
		processor := &service.SimulatedProcessor{Err: errors.New("card declined")}
		f := newCheckoutFixture(t, processor)
		f.fillCart(t)

		first, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		require.NoError(t, err)
		f.orderService.Wait()

		processor.Err = nil

		// Act
		second, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		require.NoError(t, err)
		f.orderService.Wait()

		// Assert
		assert.NotEqual(t, first.ID, second.ID)

		settled, err := f.orderService.GetOrderByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusSucceeded, settled.Status)

		history, err := f.orderService.ListOrdersByCustomer(ctx, f.customerID)
		require.NoError(t, err)
		assert.Equal(t, 2, history.Total)
	})
}

func TestGetOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Unknown Order", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(0))

		// Act
		status, err := f.orderService.GetOrderStatus(ctx, uuid.New())

		// Assert
		assert.Nil(t, status)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Success - Status Reaches Terminal State", func(t *testing.T) {
		f := newCheckoutFixture(t, service.NewSimulatedProcessor(0))
		f.fillCart(t)

		order, err := f.orderService.Checkout(ctx, f.customerID, testCheckoutReq)
		require.NoError(t, err)

		f.orderService.Wait()

		// Act
		status, err := f.orderService.GetOrderStatus(ctx, order.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, status.ID)
		assert.Equal(t, models.OrderStatusSucceeded, status.Status)
	})
}
