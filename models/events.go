package models

import "time"

// OrderCreatedItem is one line of an order-created event.
type OrderCreatedItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Price      float64 `json:"price"`
}

// OrderCreatedEvent is published after a successful commit. Downstream
// consumers (kitchen displays, notifications) subscribe to it; publication is
// best-effort and never fails the commit.
type OrderCreatedEvent struct {
	Event       string             `json:"event"` // "order.created"
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	UserID      string             `json:"user_id"`
	Total       float64            `json:"total"`
	Items       []OrderCreatedItem `json:"items"`
	Timestamp   time.Time          `json:"timestamp"`
}
