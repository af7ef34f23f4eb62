package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus tracks delivery progress as a binary flag.
type OrderStatus int

const (
	OrderStatusPending        OrderStatus = 0
	OrderStatusOutForDelivery OrderStatus = 1
)

// Order is the immutable snapshot produced by committing a cart. Total is
// always server-computed at commit time and never recomputed afterward.
type Order struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_number"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	DeliveryCrewID *uuid.UUID     `gorm:"type:uuid;index" json:"delivery_crew_id,omitempty"`
	Status         OrderStatus    `gorm:"not null;default:0" json:"status"`
	Total          float64        `gorm:"not null" json:"total"`
	Date           Date           `gorm:"type:date;not null" json:"date"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	OrderItems     []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem is one line of an order, copied verbatim from the originating
// cart row at commit time. Later menu price edits never touch these values.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Price      float64   `gorm:"not null" json:"price"`
}

// CreateOrderRequest is the payload for committing the caller's cart. The
// total is never client-supplied.
type CreateOrderRequest struct {
	Date *Date `json:"date"`
}

// UpdateOrderRequest is the payload for PUT/PATCH on an order. Managers may
// set both fields; an assigned delivery crew member may set status only.
type UpdateOrderRequest struct {
	Status         *OrderStatus `json:"status" binding:"omitempty,oneof=0 1"`
	DeliveryCrewID *uuid.UUID   `json:"delivery_crew_id"`
}

// OrderListResponse wraps a paginated order listing.
type OrderListResponse struct {
	Orders []Order  `json:"orders"`
	Meta   MetaData `json:"meta"`
}

// MetaData carries pagination info on list responses.
type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}
