package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LutherWJ/AlfredOrdering/internal/logger"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
)

// CatalogProvider resolves a restaurant's full menu.
type CatalogProvider interface {
	GetMenu(ctx context.Context, restaurantID string) (*models.Menu, error)
}

// CustomerProvider resolves a customer account.
type CustomerProvider interface {
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
}

// Store persists finished order records. Save must write the whole record
// atomically; a duplicate order number must come back as ErrDuplicateNumber.
type Store interface {
	Save(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
}

// Publisher emits order lifecycle events for downstream consumers.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
}

// Service assembles orders: it validates the selection against the live
// catalog, prices every line, freezes customer/restaurant snapshots and
// persists the finished record in a single write.
type Service struct {
	catalog   CatalogProvider
	customers CustomerProvider
	store     Store
	publisher Publisher
	pricer    Pricer
	taxRate   float64
	logger    *logger.Logger
	now       func() time.Time
}

// Config carries the ordering policy knobs.
type Config struct {
	TaxRate              float64
	MaxExtraDepth        int
	EnforceMaxSelectable bool
}

// NewService creates an order service. publisher may be nil when no broker
// is configured; order creation then simply skips the event.
func NewService(catalog CatalogProvider, customers CustomerProvider, store Store, publisher Publisher, cfg Config, log *logger.Logger) *Service {
	taxRate := cfg.TaxRate
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Service{
		catalog:   catalog,
		customers: customers,
		store:     store,
		publisher: publisher,
		pricer: Pricer{
			MaxExtraDepth:        cfg.MaxExtraDepth,
			EnforceMaxSelectable: cfg.EnforceMaxSelectable,
		},
		taxRate: taxRate,
		logger:  log,
		now:     time.Now,
	}
}

// CreateOrder assembles and persists one order for the given customer.
//
// The whole order is computed in memory first and committed with one terminal
// write, so a failure at any point leaves no partial record behind.
func (s *Service) CreateOrder(ctx context.Context, customerID string, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, &OrderError{Code: CodeEmptyOrder}
	}

	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	menu, err := s.catalog.GetMenu(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var subtotal float64

	for _, sel := range req.Items {
		menuItem, err := FindMenuItem(menu, sel.ItemID)
		if err != nil {
			return nil, err
		}

		line, err := s.pricer.PriceOrderItem(menuItem, sel.Quantity, sel.Extras)
		if err != nil {
			return nil, err
		}

		items = append(items, *line)
		subtotal += line.LineSubtotal
	}

	tax := Tax(subtotal, s.taxRate)
	now := s.now().UTC()

	ord := &models.Order{
		Number:              GenerateOrderNumber(now),
		Customer:            customerSnapshot(customer),
		Restaurant:          restaurantSnapshot(menu),
		Items:               items,
		Status:              models.StatusPending,
		Subtotal:            subtotal,
		Tax:                 tax,
		Total:               subtotal + tax,
		PickupTimeRequested: req.PickupTime(),
		SpecialInstructions: req.SpecialInstructions,
		OrderDatetime:       now,
	}

	saved, err := s.store.Save(ctx, ord)
	if errors.Is(err, ErrDuplicateNumber) {
		// Same-millisecond collision; one retry with a fresh number.
		ord.Number = GenerateOrderNumber(s.now().UTC())
		saved, err = s.store.Save(ctx, ord)
	}
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_number": saved.Number,
		"total_amount": saved.Total,
		"items":        len(saved.Items),
	})

	s.publishCreated(ctx, saved, requestID)
	return saved, nil
}

// GetOrder fetches a previously created order by its number.
func (s *Service) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	return s.store.GetByNumber(ctx, number)
}

// ListCustomerOrders returns a customer's order history, newest first.
func (s *Service) ListCustomerOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

// publishCreated emits the order.created event. The order is already
// committed; a publish failure is logged and swallowed.
func (s *Service) publishCreated(ctx context.Context, ord *models.Order, requestID string) {
	if s.publisher == nil {
		return
	}
	event := &models.OrderCreatedEvent{
		EventType: "order.created",
		Order:     ord,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order.created event", requestID, err, map[string]interface{}{
			"order_number": ord.Number,
		})
	}
}

// customerSnapshot freezes the customer's contact info onto the order.
func customerSnapshot(c *models.Customer) models.CustomerSnapshot {
	return models.CustomerSnapshot{
		CustomerID:    c.ID,
		Name:          c.DisplayName(),
		PreferredName: c.PreferredName,
		Email:         c.Email,
		Phone:         c.Phone,
		StudentID:     c.StudentID,
	}
}

// restaurantSnapshot freezes the restaurant's identity onto the order.
func restaurantSnapshot(m *models.Menu) models.RestaurantSnapshot {
	return models.RestaurantSnapshot{
		RestaurantID: m.RestaurantID,
		Name:         m.RestaurantName,
		Location:     m.RestaurantLocation,
		Phone:        m.RestaurantPhone,
	}
}
