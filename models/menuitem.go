package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a purchasable dish. Only Managers mutate menu items; price
// changes never propagate to carts or orders that already snapshot a price.
type MenuItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title      string         `gorm:"type:varchar(128);not null" json:"title"`
	Price      float64        `gorm:"not null" json:"price"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Featured   bool           `gorm:"not null;default:false" json:"featured"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateMenuItemRequest is the payload for creating a menu item.
type CreateMenuItemRequest struct {
	Title      string    `json:"title" binding:"required,min=1,max=128"`
	Price      float64   `json:"price" binding:"required,gt=0"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Featured   bool      `json:"featured"`
}

// UpdateMenuItemRequest is the payload for PUT/PATCH on a menu item. Nil
// fields are left untouched.
type UpdateMenuItemRequest struct {
	Title      *string    `json:"title" binding:"omitempty,min=1,max=128"`
	Price      *float64   `json:"price" binding:"omitempty,gt=0"`
	CategoryID *uuid.UUID `json:"category_id"`
	Featured   *bool      `json:"featured"`
}

// MenuItemFilter narrows menu listings.
type MenuItemFilter struct {
	CategoryID   *uuid.UUID
	Featured     *bool
	OrderByPrice bool
}
