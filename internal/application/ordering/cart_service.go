package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
)

// CartService manages anonymous carts
type CartService struct {
	carts ordering.CartRepository
}

// NewCartService creates a CartService
func NewCartService(carts ordering.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// Create opens an empty cart
func (s *CartService) Create(ctx context.Context) (*CartResponse, error) {
	cart := ordering.NewCart()
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// Get returns the cart with line totals
func (s *CartService) Get(ctx context.Context, id uuid.UUID) (*CartResponse, error) {
	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// Delete removes the cart
func (s *CartService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.carts.Delete(ctx, id)
}

// AddItem adds a product, or increases its quantity when already in the cart
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddCartItemRequest) (*CartItemResponse, error) {
	item, err := ordering.NewCartItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	saved, err := s.carts.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}
	resp := ToCartItemResponse(*saved)
	return &resp, nil
}

// UpdateItem sets the quantity of a line
func (s *CartService) UpdateItem(ctx context.Context, cartID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartItemResponse, error) {
	if err := ordering.ValidateCartQuantity(req.Quantity); err != nil {
		return nil, err
	}
	saved, err := s.carts.UpdateItemQuantity(ctx, cartID, itemID, req.Quantity)
	if err != nil {
		return nil, err
	}
	resp := ToCartItemResponse(*saved)
	return &resp, nil
}

// RemoveItem deletes a line
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return s.carts.RemoveItem(ctx, cartID, itemID)
}
