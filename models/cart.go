package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one pending line in a user's cart. The unit price is captured
// when the row is first created and never refreshed from the menu, so
// CartItem.Price == UnitPrice * Quantity holds for the row's whole lifetime.
type CartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_menuitem" json:"user_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_menuitem" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Price      float64   `gorm:"not null" json:"price"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AddCartItemRequest is the payload for adding a menu item to the cart.
// Adding an item already in the cart increments its quantity.
type AddCartItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}
