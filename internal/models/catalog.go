package models

import "time"

// MenuExtra is a selectable customization option on a menu item. Extras nest:
// a combo's "Entree" extra carries the entree choices as children, and each
// choice may carry its own extras (toppings and so on).
type MenuExtra struct {
	ExtraID       string      `json:"extra_id" db:"extra_id"`
	Name          string      `json:"extra_name" db:"extra_name"`
	Description   string      `json:"extra_description,omitempty" db:"extra_description"`
	PriceDelta    float64     `json:"price_delta" db:"price_delta"`
	IsAvailable   bool        `json:"is_available" db:"is_available"`
	IsRequired    bool        `json:"is_required" db:"is_required"`
	MaxSelectable int         `json:"max_selectable,omitempty" db:"max_selectable"`
	DisplayOrder  int         `json:"display_order" db:"display_order"`
	Extras        []MenuExtra `json:"extras,omitempty" db:"extras"`
}

// MenuItem is an orderable item within a menu group.
type MenuItem struct {
	ItemID      string      `json:"item_id" db:"item_id"`
	Name        string      `json:"item_name" db:"item_name"`
	Description string      `json:"description,omitempty" db:"description"`
	BasePrice   float64     `json:"base_price" db:"base_price"`
	IsAvailable bool        `json:"is_available" db:"is_available"`
	MaxPerOrder int         `json:"max_per_order" db:"max_per_order"`
	Extras      []MenuExtra `json:"extras,omitempty" db:"extras"`
}

// MenuGroup is a display category of items (e.g. "Burgers", "Salads").
type MenuGroup struct {
	GroupID      string     `json:"group_id" db:"group_id"`
	Name         string     `json:"group_name" db:"group_name"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	Items        []MenuItem `json:"items"`
}

// Menu is the full catalog of one restaurant. The ordering engine treats it
// as a read-only snapshot for the duration of a single order assembly.
type Menu struct {
	RestaurantID       string      `json:"restaurant_id" db:"restaurant_id"`
	RestaurantName     string      `json:"restaurant_name" db:"restaurant_name"`
	RestaurantLocation string      `json:"restaurant_location" db:"restaurant_location"`
	RestaurantPhone    string      `json:"restaurant_phone,omitempty" db:"restaurant_phone"`
	IsActive           bool        `json:"is_active" db:"is_active"`
	Groups             []MenuGroup `json:"groups"`
	CreatedAt          time.Time   `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at,omitempty" db:"updated_at"`
}
