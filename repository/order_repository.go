package repository

import (
	"context"
	"errors"

	"restaurant-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyCart is returned by CreateFromCart when the user has nothing to
// commit.
var ErrEmptyCart = errors.New("cart is empty")

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// CreateFromCart atomically snapshots the user's cart rows into the
	// given order and drains the cart. The order's Total and OrderItems are
	// filled in from the snapshot; the caller never supplies them.
	CreateFromCart(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateFromCart runs the whole commit sequence in one transaction: lock and
// read the cart snapshot, compute the total, insert the order and its items,
// delete the cart rows. On any failure the transaction rolls back and no
// partial state is left behind. The row locks serialize concurrent commits
// from the same user.
func (r *GormOrderRepository) CreateFromCart(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", order.UserID).
			Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		total := 0.0
		for _, item := range cartItems {
			total += item.Price
		}
		order.Total = total

		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				Price:      item.Price,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}
		order.OrderItems = orderItems

		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

// FindByUserID retrieves orders for a specific user with pagination.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindAll retrieves all orders with pagination.
func (r *GormOrderRepository) FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindByID retrieves an order with its items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Update persists status/delivery-crew changes on an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("OrderItems").Save(order).Error
}

// Delete soft-deletes an order.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
