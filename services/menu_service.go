package services

import (
	"context"
	"errors"
	"strings"

	"restaurant-service/apperrors"
	"restaurant-service/auth"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MenuService defines the business logic for catalog and menu items.
type MenuService interface {
	ListCategories(ctx context.Context) ([]models.Category, *apperrors.Error)
	CreateCategory(ctx context.Context, id *auth.Identity, req *models.CreateCategoryRequest) (*models.Category, *apperrors.Error)
	ListMenuItems(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, *apperrors.Error)
	GetMenuItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, *apperrors.Error)
	CreateMenuItem(ctx context.Context, id *auth.Identity, req *models.CreateMenuItemRequest) (*models.MenuItem, *apperrors.Error)
	UpdateMenuItem(ctx context.Context, id *auth.Identity, itemID uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, *apperrors.Error)
	DeleteMenuItem(ctx context.Context, id *auth.Identity, itemID uuid.UUID) *apperrors.Error
}

type menuServiceImpl struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
	logger     *zap.Logger
}

// NewMenuService creates a new MenuService.
func NewMenuService(categories repository.CategoryRepository, items repository.MenuItemRepository, logger *zap.Logger) MenuService {
	return &menuServiceImpl{categories: categories, items: items, logger: logger}
}

// ListCategories returns all categories. Readable by everyone.
func (s *menuServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *apperrors.Error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch categories", err)
	}
	return categories, nil
}

// CreateCategory creates a category. Manager only.
func (s *menuServiceImpl) CreateCategory(ctx context.Context, id *auth.Identity, req *models.CreateCategoryRequest) (*models.Category, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceMenu); authErr != nil {
		return nil, authErr
	}

	category := &models.Category{
		Slug:  strings.ToLower(req.Slug),
		Title: req.Title,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("Category slug already exists")
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, apperrors.Internal("Failed to create category", err)
	}

	s.logger.Info("Category created", zap.String("slug", category.Slug))
	return category, nil
}

// ListMenuItems returns menu items matching the filter. Readable by everyone.
func (s *menuServiceImpl) ListMenuItems(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, *apperrors.Error) {
	items, err := s.items.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list menu items", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch menu items", err)
	}
	return items, nil
}

// GetMenuItem returns a single menu item.
func (s *menuServiceImpl) GetMenuItem(ctx context.Context, itemID uuid.UUID) (*models.MenuItem, *apperrors.Error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Menu item not found")
		}
		s.logger.Error("Failed to fetch menu item", zap.String("id", itemID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch menu item", err)
	}
	return item, nil
}

// CreateMenuItem creates a menu item. Manager only; price must be positive.
func (s *menuServiceImpl) CreateMenuItem(ctx context.Context, id *auth.Identity, req *models.CreateMenuItemRequest) (*models.MenuItem, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceMenu); authErr != nil {
		return nil, authErr
	}
	if req.Price <= 0 {
		return nil, apperrors.Validation("Price must be greater than zero")
	}

	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		s.logger.Error("Failed to fetch category", zap.Error(err))
		return nil, apperrors.Internal("Failed to create menu item", err)
	}

	item := &models.MenuItem{
		Title:      req.Title,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Featured:   req.Featured,
	}
	if err := s.items.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create menu item", zap.Error(err))
		return nil, apperrors.Internal("Failed to create menu item", err)
	}

	s.logger.Info("Menu item created", zap.String("title", item.Title), zap.Float64("price", item.Price))
	return item, nil
}

// UpdateMenuItem applies a partial update to a menu item. Manager only.
// Existing cart rows and orders keep their snapshotted prices.
func (s *menuServiceImpl) UpdateMenuItem(ctx context.Context, id *auth.Identity, itemID uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceMenu); authErr != nil {
		return nil, authErr
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Menu item not found")
		}
		s.logger.Error("Failed to fetch menu item", zap.Error(err))
		return nil, apperrors.Internal("Failed to update menu item", err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperrors.Validation("Price must be greater than zero")
		}
		item.Price = *req.Price
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Category not found")
			}
			return nil, apperrors.Internal("Failed to update menu item", err)
		}
		item.CategoryID = *req.CategoryID
		item.Category = nil
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update menu item", zap.Error(err))
		return nil, apperrors.Internal("Failed to update menu item", err)
	}
	return item, nil
}

// DeleteMenuItem removes a menu item. Manager only.
func (s *menuServiceImpl) DeleteMenuItem(ctx context.Context, id *auth.Identity, itemID uuid.UUID) *apperrors.Error {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceMenu); authErr != nil {
		return authErr
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Menu item not found")
		}
		s.logger.Error("Failed to delete menu item", zap.Error(err))
		return apperrors.Internal("Failed to delete menu item", err)
	}
	return nil
}

// isDuplicate matches unique-constraint violations from the driver.
func isDuplicate(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique"))
}
