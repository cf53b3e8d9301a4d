package models

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderExtra is an immutable snapshot of a selected extra at order time.
// Name and price are copied out of the catalog so later menu edits never
// change what this order charged. Nested selections snapshot recursively.
type OrderExtra struct {
	ExtraID    string       `json:"extra_id"`
	Name       string       `json:"extra_name"`
	PriceDelta float64      `json:"extra_price"`
	Extras     []OrderExtra `json:"extras,omitempty"`
}

// OrderItem is one order line: a frozen copy of the menu item plus the
// resolved extras subtree and the line subtotal.
type OrderItem struct {
	LineID       string       `json:"order_item_id" db:"order_item_id"`
	MenuItemID   string       `json:"menu_item_id" db:"menu_item_id"`
	Name         string       `json:"item_name" db:"item_name"`
	Description  string       `json:"description,omitempty" db:"description"`
	UnitPrice    float64      `json:"unit_price" db:"unit_price"`
	Quantity     int          `json:"quantity" db:"quantity"`
	Extras       []OrderExtra `json:"extras,omitempty" db:"extras"`
	LineSubtotal float64      `json:"line_subtotal" db:"line_subtotal"`
}

// CustomerSnapshot is the customer's contact info frozen at order time.
type CustomerSnapshot struct {
	CustomerID    string `json:"customer_id"`
	Name          string `json:"name"`
	PreferredName string `json:"preferred_name,omitempty"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	StudentID     string `json:"student_id,omitempty"`
}

// RestaurantSnapshot is the restaurant's identity frozen at order time.
type RestaurantSnapshot struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Phone        string `json:"phone,omitempty"`
}

// Order is a fully assembled, self-contained order record. Once created,
// everything except status and cancellation fields is immutable; those are
// owned by fulfillment, not by this service.
type Order struct {
	ID                  int                `json:"id,omitempty" db:"id"`
	Number              string             `json:"order_number" db:"number"`
	Customer            CustomerSnapshot   `json:"customer"`
	Restaurant          RestaurantSnapshot `json:"restaurant"`
	Items               []OrderItem        `json:"items"`
	Status              OrderStatus        `json:"status" db:"status"`
	Subtotal            float64            `json:"subtotal_amount" db:"subtotal_amount"`
	Tax                 float64            `json:"tax_amount" db:"tax_amount"`
	Total               float64            `json:"total_amount" db:"total_amount"`
	PickupTimeRequested *time.Time         `json:"pickup_time_requested,omitempty" db:"pickup_time_requested"`
	PickupTimeReady     *time.Time         `json:"pickup_time_ready,omitempty" db:"pickup_time_ready"`
	SpecialInstructions string             `json:"special_instructions,omitempty" db:"special_instructions"`
	IsCancelled         bool               `json:"is_cancelled" db:"is_cancelled"`
	CancelledAt         *time.Time         `json:"cancelled_at,omitempty" db:"cancelled_at"`
	OrderDatetime       time.Time          `json:"order_datetime" db:"order_datetime"`
	CreatedAt           time.Time          `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at,omitempty" db:"updated_at"`
}

// OrderCreatedEvent is the message published to the orders exchange after an
// order commits. Downstream consumers (reporting sync, notifications) get the
// full frozen record; they never read this service's tables directly.
type OrderCreatedEvent struct {
	EventType string    `json:"event_type"`
	Order     *Order    `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}
