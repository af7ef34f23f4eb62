package repository

import (
	"context"

	"restaurant-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemRepository defines data access for menu items.
type MenuItemRepository interface {
	FindAll(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormMenuItemRepository implements MenuItemRepository using GORM.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository.
func NewGormMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindAll retrieves menu items matching the filter.
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{}).Preload("Category")

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.OrderByPrice {
		query = query.Order("price ASC")
	} else {
		query = query.Order("title ASC")
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a menu item by id with its category.
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new menu item.
func (r *GormMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update persists changes to an existing menu item.
func (r *GormMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete soft-deletes a menu item.
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
