package order

import (
	"errors"
	"fmt"
)

// ErrDuplicateNumber is returned by the store when an order number collides
// with an existing record. Collisions are retryable, never fatal.
var ErrDuplicateNumber = errors.New("order number already exists")

// ErrOrderNotFound is returned by the store when no order matches a number.
var ErrOrderNotFound = errors.New("order not found")

// ErrorCode discriminates ordering failures so the HTTP layer can map each
// one to a response without parsing messages.
type ErrorCode string

const (
	CodeMenuNotFound         ErrorCode = "menu_not_found"
	CodeItemNotFound         ErrorCode = "item_not_found"
	CodeExtraNotFound        ErrorCode = "extra_not_found"
	CodeCustomerNotFound     ErrorCode = "customer_not_found"
	CodeItemUnavailable      ErrorCode = "item_unavailable"
	CodeExtraUnavailable     ErrorCode = "extra_unavailable"
	CodeRequiredExtraMissing ErrorCode = "required_extra_missing"
	CodeTooManySelections    ErrorCode = "too_many_selections"
	CodeEmptyOrder           ErrorCode = "empty_order"
	CodeExtraTreeTooDeep     ErrorCode = "extra_tree_too_deep"
)

// OrderError is a business-rule or reference failure raised while assembling
// an order. Name carries the offending entity's display name (for messages
// like "Drink is required"); ID carries the client-supplied identifier when
// there is no catalog entity to name.
type OrderError struct {
	Code ErrorCode
	Name string
	ID   string
}

func (e *OrderError) Error() string {
	switch e.Code {
	case CodeMenuNotFound:
		return "Menu not found"
	case CodeItemNotFound:
		return fmt.Sprintf("Item %s not found", e.ID)
	case CodeExtraNotFound:
		return fmt.Sprintf("Extra %s not found", e.ID)
	case CodeCustomerNotFound:
		return "Customer not found"
	case CodeItemUnavailable, CodeExtraUnavailable:
		return fmt.Sprintf("%s is currently unavailable", e.Name)
	case CodeRequiredExtraMissing:
		return fmt.Sprintf("%s is required", e.Name)
	case CodeTooManySelections:
		return fmt.Sprintf("too many selections for %s", e.Name)
	case CodeEmptyOrder:
		return "order must contain at least one item"
	case CodeExtraTreeTooDeep:
		return "extras are nested too deeply"
	default:
		return string(e.Code)
	}
}

// IsNotFound reports whether err is a reference error: the client named an
// identifier that does not exist.
func IsNotFound(err error) bool {
	var oe *OrderError
	if !errors.As(err, &oe) {
		return false
	}
	switch oe.Code {
	case CodeMenuNotFound, CodeItemNotFound, CodeExtraNotFound, CodeCustomerNotFound:
		return true
	}
	return false
}

// IsRuleViolation reports whether err is a business-rule error: the selection
// violates current catalog constraints. Retrying the same request will fail
// identically until the client changes its selection or the catalog changes.
func IsRuleViolation(err error) bool {
	var oe *OrderError
	if !errors.As(err, &oe) {
		return false
	}
	switch oe.Code {
	case CodeItemUnavailable, CodeExtraUnavailable, CodeRequiredExtraMissing,
		CodeTooManySelections, CodeEmptyOrder, CodeExtraTreeTooDeep:
		return true
	}
	return false
}
