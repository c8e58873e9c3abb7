package domain

import "time"

// Product is a catalog entry; the catalog service owns it
type Product struct {
	ID        string                 `json:"id"`
	SKU       string                 `json:"sku"`
	Name      string                 `json:"name"`
	Price     float64                `json:"price"`
	Inventory *int                   `json:"inventory,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"` // Color, Size, Weight...
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Order is a read-only snapshot of an order; only the backend changes CurrentStatus
type Order struct {
	ID            string                 `json:"id"`
	UserID        int                    `json:"user_id"`
	ProductID     string                 `json:"product_id"`
	Quantity      int                    `json:"quantity"`
	CurrentStatus OrderStatus            `json:"current_status"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"` // Shipping address and other details
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// OrderHistoryEntry is one append-only record of a status change
type OrderHistoryEntry struct {
	OrderID        string      `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
	UpdatedBy      int         `json:"updated_by"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// StatusUpdate is the backend's authoritative answer to a status change
type StatusUpdate struct {
	OrderID        string      `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	CurrentStatus  OrderStatus `json:"current_status"`
	UpdatedBy      int         `json:"updated_by"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}
