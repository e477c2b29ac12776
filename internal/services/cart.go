package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilarora068/pharmacare-backend/internal/config"
	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	repository "github.com/nikhilarora068/pharmacare-backend/internal/repositories"
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     config.Pricing
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing config.Pricing) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, pricing: pricing}
}

// GetCart returns the customer's cart, creating an empty one on first use.
func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.respond(cart), nil
}

// AddItem increments an existing line or inserts a new one. The product must
// exist in the catalog.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.UnknownProductError("Product not found in catalog").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	key := req.ProductID.String()
	item, exists := cart.Items[key]

	if exists {
		item.Quantity += qty
	} else {
		item = models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  qty,
		}
	}

	item.TotalPrice = item.UnitPrice * float64(item.Quantity)
	cart.Items[key] = item
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.respond(cart), nil
}

// UpdateQuantity adjusts one line. Decrementing at quantity 1 removes the
// line; an explicit set below 1 is rejected, the line floor is 1.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	key := req.ProductID.String()

	item, exists := cart.Items[key]
	if !exists {
		return nil, appErrors.NotFoundError("Item not found in the cart")
	}

	switch req.Action {
	case models.QuantityActionIncrement:
		item.Quantity++
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
		cart.Items[key] = item

	case models.QuantityActionDecrement:
		if item.Quantity <= 1 {
			delete(cart.Items, key)
		} else {
			item.Quantity--
			item.TotalPrice = item.UnitPrice * float64(item.Quantity)
			cart.Items[key] = item
		}

	case models.QuantityActionSet:
		if req.Quantity < 1 {
			return nil, appErrors.InvalidQuantityError("Quantity must be at least 1")
		}

		item.Quantity = req.Quantity
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
		cart.Items[key] = item

	default:
		return nil, appErrors.BadRequestError("Unknown quantity action")
	}

	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.respond(cart), nil
}

// RemoveItem deletes a line outright. Removing an absent line is a no-op,
// unlike reminder deletion; the storefront treats line removal as idempotent.
func (s *CartService) RemoveItem(ctx context.Context, customerID uuid.UUID, productID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.getOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	delete(cart.Items, productID.String())
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.respond(cart), nil
}

// ComputeTotals derives the money amounts; values stay unrounded here and are
// rounded only at the presentation boundary.
func (s *CartService) ComputeTotals(items map[string]models.CartItem) models.CartTotals {

	var subtotal float64

	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	shipping := s.pricing.ShippingFee
	tax := subtotal * s.pricing.TaxRate

	return models.CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

func (s *CartService) getOrCreateCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByCustomerID(ctx, customerID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:        uuid.New(),
		UserID:    customerID,
		Items:     make(map[string]models.CartItem),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *CartService) respond(cart *models.Cart) *models.CartResponse {
	return &models.CartResponse{
		Cart:   cart,
		Totals: s.ComputeTotals(cart.Items),
	}
}
