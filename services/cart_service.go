package services

import (
	"context"
	"errors"

	"restaurant-service/apperrors"
	"restaurant-service/auth"
	"restaurant-service/models"
	"restaurant-service/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService defines the business logic for the per-user cart.
type CartService interface {
	ListCart(ctx context.Context, id *auth.Identity) ([]models.CartItem, *apperrors.Error)
	AddItem(ctx context.Context, id *auth.Identity, req *models.AddCartItemRequest) (*models.CartItem, *apperrors.Error)
	ClearCart(ctx context.Context, id *auth.Identity) *apperrors.Error
}

type cartServiceImpl struct {
	carts  repository.CartRepository
	items  repository.MenuItemRepository
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartRepository, items repository.MenuItemRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, items: items, logger: logger}
}

// ListCart returns the caller's cart rows, in no guaranteed order.
func (s *cartServiceImpl) ListCart(ctx context.Context, id *auth.Identity) ([]models.CartItem, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionRead, auth.ResourceCart); authErr != nil {
		return nil, authErr
	}

	items, err := s.carts.FindByUser(ctx, id.UserID)
	if err != nil {
		s.logger.Error("Failed to list cart", zap.String("user_id", id.UserID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch cart", err)
	}
	return items, nil
}

// AddItem adds a menu item to the caller's cart, or increments the quantity
// of an existing row. The unit price stays pinned to the value captured when
// the row was first created; only the line total is recomputed.
func (s *cartServiceImpl) AddItem(ctx context.Context, id *auth.Identity, req *models.AddCartItemRequest) (*models.CartItem, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceCart); authErr != nil {
		return nil, authErr
	}
	if req.Quantity < 1 {
		return nil, apperrors.Validation("Quantity must be a positive integer")
	}

	menuItem, err := s.items.FindByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Menu item not found")
		}
		s.logger.Error("Failed to fetch menu item", zap.Error(err))
		return nil, apperrors.Internal("Failed to add to cart", err)
	}

	existing, err := s.carts.FindByUserAndMenuItem(ctx, id.UserID, menuItem.ID)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		existing.Price = existing.UnitPrice * float64(existing.Quantity)
		if err := s.carts.Update(ctx, existing); err != nil {
			s.logger.Error("Failed to update cart row", zap.Error(err))
			return nil, apperrors.Internal("Failed to add to cart", err)
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := &models.CartItem{
			UserID:     id.UserID,
			MenuItemID: menuItem.ID,
			Quantity:   req.Quantity,
			UnitPrice:  menuItem.Price,
			Price:      menuItem.Price * float64(req.Quantity),
		}
		if err := s.carts.Create(ctx, row); err != nil {
			s.logger.Error("Failed to create cart row", zap.Error(err))
			return nil, apperrors.Internal("Failed to add to cart", err)
		}
		return row, nil

	default:
		s.logger.Error("Failed to look up cart row", zap.Error(err))
		return nil, apperrors.Internal("Failed to add to cart", err)
	}
}

// ClearCart deletes all of the caller's cart rows. Clearing an already empty
// cart succeeds.
func (s *cartServiceImpl) ClearCart(ctx context.Context, id *auth.Identity) *apperrors.Error {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceCart); authErr != nil {
		return authErr
	}

	if err := s.carts.DeleteByUser(ctx, id.UserID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", id.UserID.String()), zap.Error(err))
		return apperrors.Internal("Failed to clear cart", err)
	}
	return nil
}
