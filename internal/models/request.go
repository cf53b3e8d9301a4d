package models

import (
	"fmt"
	"time"
)

const (
	maxItemsPerOrder        = 20
	maxSpecialInstructions  = 500
	maxQuantityPerLineLimit = 10
)

// ExtraSelection is one selected extra within a line. Selections form a tree
// mirroring the catalog: selecting a combo's entree carries the entree's own
// topping selections in Extras.
type ExtraSelection struct {
	ExtraID string           `json:"extra_id"`
	Extras  []ExtraSelection `json:"extras,omitempty"`
}

// ItemSelection is one requested line: an item, a quantity and the selected
// extras tree for that item.
type ItemSelection struct {
	ItemID   string           `json:"item_id"`
	Quantity int              `json:"quantity"`
	Extras   []ExtraSelection `json:"extras,omitempty"`
}

// CreateOrderRequest is the untrusted client payload for creating an order.
type CreateOrderRequest struct {
	RestaurantID        string          `json:"restaurant_id"`
	Items               []ItemSelection `json:"items"`
	PickupTimeRequested string          `json:"pickup_time_requested,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// Validate checks the request shape: identifiers present, sane quantities,
// bounded sizes. Catalog consistency (does the item exist, is it available,
// were required extras chosen) is the ordering engine's job, not this one's.
func (req *CreateOrderRequest) Validate() error {
	if req.RestaurantID == "" {
		return fmt.Errorf("restaurant_id is required")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if len(req.Items) > maxItemsPerOrder {
		return fmt.Errorf("items array cannot contain more than %d items", maxItemsPerOrder)
	}

	for i, item := range req.Items {
		if err := validateItemSelection(item, i); err != nil {
			return err
		}
	}

	if req.PickupTimeRequested != "" {
		if _, err := time.Parse(time.RFC3339, req.PickupTimeRequested); err != nil {
			return fmt.Errorf("pickup_time_requested must be a valid RFC3339 timestamp")
		}
	}

	if len(req.SpecialInstructions) > maxSpecialInstructions {
		return fmt.Errorf("special_instructions must not exceed %d characters", maxSpecialInstructions)
	}

	return nil
}

// PickupTime returns the parsed pickup time, or nil when none was requested.
// Validate must have passed first.
func (req *CreateOrderRequest) PickupTime() *time.Time {
	if req.PickupTimeRequested == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, req.PickupTimeRequested)
	if err != nil {
		return nil
	}
	return &t
}

// validateItemSelection validates a single requested line
func validateItemSelection(item ItemSelection, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if item.ItemID == "" {
		return fmt.Errorf("%s.item_id is required", prefix)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%s.quantity must be a positive integer", prefix)
	}
	if item.Quantity > maxQuantityPerLineLimit {
		return fmt.Errorf("%s.quantity must be less than or equal to %d", prefix, maxQuantityPerLineLimit)
	}

	for j, extra := range item.Extras {
		if err := validateExtraSelection(extra, fmt.Sprintf("%s.extras[%d]", prefix, j)); err != nil {
			return err
		}
	}

	return nil
}

// validateExtraSelection validates a selection node and its children
func validateExtraSelection(extra ExtraSelection, prefix string) error {
	if extra.ExtraID == "" {
		return fmt.Errorf("%s.extra_id is required", prefix)
	}
	for j, nested := range extra.Extras {
		if err := validateExtraSelection(nested, fmt.Sprintf("%s.extras[%d]", prefix, j)); err != nil {
			return err
		}
	}
	return nil
}
