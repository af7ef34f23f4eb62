package repository

import (
	"context"

	"restaurant-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data access for cart rows.
type CartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByUserAndMenuItem(ctx context.Context, userID, menuItemID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser retrieves all cart rows owned by the user.
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserAndMenuItem retrieves the cart row for a (user, menu item) pair.
func (r *GormCartRepository) FindByUserAndMenuItem(ctx context.Context, userID, menuItemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cart row. Two concurrent first-time adds for the same
// (user, menu item) pair race past the existence check, so the insert folds a
// duplicate into an increment of the existing row instead of tripping the
// unique index. The stored unit_price stays pinned.
func (r *GormCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"price":    gorm.Expr("cart_items.unit_price * (cart_items.quantity + excluded.quantity)"),
		}),
	}).Create(item).Error
}

// Update persists quantity/price changes on an existing cart row.
func (r *GormCartRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByUser removes all cart rows owned by the user. Deleting an already
// empty cart is a success.
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
