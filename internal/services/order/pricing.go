package order

import (
	"github.com/google/uuid"

	"github.com/LutherWJ/AlfredOrdering/internal/models"
)

// DefaultMaxExtraDepth caps how deep a selection tree may nest. Real menus
// use a handful of levels; anything deeper is hostile input.
const DefaultMaxExtraDepth = 10

// Pricer walks a client's selections against a menu's extra tree, validating
// every level and producing frozen snapshots plus the total price delta.
type Pricer struct {
	// MaxExtraDepth bounds selection-tree recursion. Zero means DefaultMaxExtraDepth.
	MaxExtraDepth int
	// EnforceMaxSelectable makes a node's max_selectable a hard failure
	// instead of advisory.
	EnforceMaxSelectable bool
}

// FindMenuItem scans every group's item list in display order and returns the
// first item matching id. A miss is a client-input error, not a server fault.
func FindMenuItem(menu *models.Menu, itemID string) (*models.MenuItem, error) {
	for gi := range menu.Groups {
		group := &menu.Groups[gi]
		for ii := range group.Items {
			if group.Items[ii].ItemID == itemID {
				return &group.Items[ii], nil
			}
		}
	}
	return nil, &OrderError{Code: CodeItemNotFound, ID: itemID}
}

// validateLevel enforces the per-level rules for one set of sibling catalog
// extras and the selections made at that level:
//   - every required catalog extra must appear in the selections
//   - every selected id must exist among the catalog extras
//   - no selected extra may be unavailable
//
// Each level is independent: a required choice one level down only matters
// once its parent is actually selected.
func (p *Pricer) validateLevel(catalogExtras []models.MenuExtra, selections []models.ExtraSelection) error {
	for i := range catalogExtras {
		menuExtra := &catalogExtras[i]
		if !menuExtra.IsRequired {
			continue
		}
		selected := false
		for _, sel := range selections {
			if sel.ExtraID == menuExtra.ExtraID {
				selected = true
				break
			}
		}
		if !selected {
			return &OrderError{Code: CodeRequiredExtraMissing, Name: menuExtra.Name}
		}
	}
	return nil
}

// findExtra locates a selected id among the sibling catalog extras at the
// current level. The engine never searches outside the level it was handed.
func findExtra(catalogExtras []models.MenuExtra, extraID string) *models.MenuExtra {
	for i := range catalogExtras {
		if catalogExtras[i].ExtraID == extraID {
			return &catalogExtras[i]
		}
	}
	return nil
}

// checkSelectionCaps enforces max_selectable per parent: the number of
// sibling selections under one parent must not exceed the parent's cap.
func checkSelectionCaps(parentName string, maxSelectable int, selections []models.ExtraSelection) error {
	if maxSelectable < 1 {
		return nil
	}
	// Duplicate sibling selections count individually against the cap.
	if len(selections) > maxSelectable {
		return &OrderError{Code: CodeTooManySelections, Name: parentName}
	}
	return nil
}

// PriceExtras recursively prices one level of selections against the matching
// level of catalog extras. It returns frozen snapshots for this level (nested
// snapshots included) and the total price delta of the whole subtree.
//
// The first violation aborts the walk; no partial snapshot is ever returned.
func (p *Pricer) PriceExtras(catalogExtras []models.MenuExtra, selections []models.ExtraSelection) ([]models.OrderExtra, float64, error) {
	maxDepth := p.MaxExtraDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxExtraDepth
	}
	return p.priceLevel(catalogExtras, selections, 1, maxDepth)
}

func (p *Pricer) priceLevel(catalogExtras []models.MenuExtra, selections []models.ExtraSelection, depth, maxDepth int) ([]models.OrderExtra, float64, error) {
	if len(selections) > 0 && depth > maxDepth {
		return nil, 0, &OrderError{Code: CodeExtraTreeTooDeep}
	}

	if err := p.validateLevel(catalogExtras, selections); err != nil {
		return nil, 0, err
	}

	snapshots := make([]models.OrderExtra, 0, len(selections))
	var total float64

	for _, sel := range selections {
		menuExtra := findExtra(catalogExtras, sel.ExtraID)
		if menuExtra == nil {
			return nil, 0, &OrderError{Code: CodeExtraNotFound, ID: sel.ExtraID}
		}

		if !menuExtra.IsAvailable {
			return nil, 0, &OrderError{Code: CodeExtraUnavailable, Name: menuExtra.Name}
		}

		if p.EnforceMaxSelectable {
			if err := checkSelectionCaps(menuExtra.Name, menuExtra.MaxSelectable, sel.Extras); err != nil {
				return nil, 0, err
			}
		}

		nested, nestedTotal, err := p.priceLevel(menuExtra.Extras, sel.Extras, depth+1, maxDepth)
		if err != nil {
			return nil, 0, err
		}

		snapshots = append(snapshots, models.OrderExtra{
			ExtraID:    menuExtra.ExtraID,
			Name:       menuExtra.Name,
			PriceDelta: menuExtra.PriceDelta,
			Extras:     nested,
		})
		total += menuExtra.PriceDelta + nestedTotal
	}

	return snapshots, total, nil
}

// PriceOrderItem prices one requested line against its menu item: validates
// availability, prices the extras subtree and builds the frozen line snapshot
// with line_subtotal = quantity * (base_price + extras total).
func (p *Pricer) PriceOrderItem(menuItem *models.MenuItem, quantity int, selections []models.ExtraSelection) (*models.OrderItem, error) {
	// An unavailable item short-circuits before any extras are considered.
	if !menuItem.IsAvailable {
		return nil, &OrderError{Code: CodeItemUnavailable, Name: menuItem.Name}
	}

	extras, extrasTotal, err := p.PriceExtras(menuItem.Extras, selections)
	if err != nil {
		return nil, err
	}

	return &models.OrderItem{
		LineID:       uuid.NewString(),
		MenuItemID:   menuItem.ItemID,
		Name:         menuItem.Name,
		Description:  menuItem.Description,
		UnitPrice:    menuItem.BasePrice,
		Quantity:     quantity,
		Extras:       extras,
		LineSubtotal: float64(quantity) * (menuItem.BasePrice + extrasTotal),
	}, nil
}
