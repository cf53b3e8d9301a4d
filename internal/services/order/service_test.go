package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LutherWJ/AlfredOrdering/internal/logger"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
)

type fakeCatalog struct {
	menus map[string]*models.Menu
}

func (f *fakeCatalog) GetMenu(_ context.Context, restaurantID string) (*models.Menu, error) {
	menu, ok := f.menus[restaurantID]
	if !ok {
		return nil, &OrderError{Code: CodeMenuNotFound, ID: restaurantID}
	}
	return menu, nil
}

type fakeCustomers struct {
	customers map[string]*models.Customer
}

func (f *fakeCustomers) GetCustomer(_ context.Context, customerID string) (*models.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, &OrderError{Code: CodeCustomerNotFound, ID: customerID}
	}
	return c, nil
}

type fakeStore struct {
	saved         []*models.Order
	failFirst     error
	failedAlready bool
}

func (f *fakeStore) Save(_ context.Context, ord *models.Order) (*models.Order, error) {
	if f.failFirst != nil && !f.failedAlready {
		f.failedAlready = true
		return nil, f.failFirst
	}
	f.saved = append(f.saved, ord)
	return ord, nil
}

func (f *fakeStore) GetByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, ord := range f.saved {
		if ord.Number == number {
			return ord, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (f *fakeStore) ListByCustomer(_ context.Context, customerID string) ([]models.Order, error) {
	var out []models.Order
	for _, ord := range f.saved {
		if ord.Customer.CustomerID == customerID {
			out = append(out, *ord)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []*models.OrderCreatedEvent
	err    error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, event *models.OrderCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func alfred() *models.Customer {
	return &models.Customer{
		ID:        "cust-1",
		FirstName: "Alfred",
		LastName:  "Wayne",
		Email:     "alfred@campus.edu",
		Phone:     "555-0142",
		StudentID: "S1234567",
		IsActive:  true,
	}
}

func newTestService(t *testing.T) (*Service, *fakeStore, *fakePublisher) {
	t.Helper()
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := NewService(
		&fakeCatalog{menus: map[string]*models.Menu{"rest-1": comboMenu()}},
		&fakeCustomers{customers: map[string]*models.Customer{"cust-1": alfred()}},
		store,
		pub,
		Config{TaxRate: 0.08, MaxExtraDepth: 10, EnforceMaxSelectable: true},
		logger.New("order-service-test"),
	)
	return svc, store, pub
}

func comboRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		RestaurantID: "rest-1",
		Items: []models.ItemSelection{
			{ItemID: "item-combo", Quantity: 2, Extras: comboSelection()},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, store, pub := newTestService(t)

	ord, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)

	require.Len(t, ord.Items, 1)
	assert.InDelta(t, 22.98, ord.Items[0].LineSubtotal, 1e-9)
	assert.InDelta(t, 22.98, ord.Subtotal, 1e-9)
	assert.InDelta(t, 1.84, ord.Tax, 1e-9)
	assert.InDelta(t, 24.82, ord.Total, 1e-9)
	assert.Equal(t, models.StatusPending, ord.Status)
	assert.NotEmpty(t, ord.Number)

	// Snapshots freeze customer and restaurant identity.
	assert.Equal(t, "Alfred Wayne", ord.Customer.Name)
	assert.Equal(t, "S1234567", ord.Customer.StudentID)
	assert.Equal(t, "Alfred's Grill", ord.Restaurant.Name)
	assert.Equal(t, "Student Center", ord.Restaurant.Location)

	require.Len(t, store.saved, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "order.created", pub.events[0].EventType)
	assert.Equal(t, ord.Number, pub.events[0].Order.Number)
}

func TestCreateOrder_TotalsInvariant(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := comboRequest()
	req.Items = append(req.Items, models.ItemSelection{
		ItemID: "item-combo", Quantity: 1, Extras: comboSelection(),
	})

	ord, err := svc.CreateOrder(context.Background(), "cust-1", req, "req-1")
	require.NoError(t, err)

	var lineSum float64
	for _, line := range ord.Items {
		lineSum += line.LineSubtotal
	}
	assert.InDelta(t, lineSum, ord.Subtotal, 1e-9)
	assert.InDelta(t, ord.Subtotal+ord.Tax, ord.Total, 1e-9)
	assert.Equal(t, Tax(ord.Subtotal, 0.08), ord.Tax)
}

func TestCreateOrder_LinesMirrorRequestOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	menu := comboMenu()
	// Make the second item orderable too.
	menu.Groups[0].Items[1].IsAvailable = true
	svc.catalog = &fakeCatalog{menus: map[string]*models.Menu{"rest-1": menu}}

	req := &models.CreateOrderRequest{
		RestaurantID: "rest-1",
		Items: []models.ItemSelection{
			{ItemID: "item-soup", Quantity: 1},
			{ItemID: "item-combo", Quantity: 1, Extras: comboSelection()},
		},
	}

	ord, err := svc.CreateOrder(context.Background(), "cust-1", req, "req-1")
	require.NoError(t, err)
	require.Len(t, ord.Items, 2)
	assert.Equal(t, "item-soup", ord.Items[0].MenuItemID)
	assert.Equal(t, "item-combo", ord.Items[1].MenuItemID)
}

func TestCreateOrder_Idempotence(t *testing.T) {
	// Identical input against an unchanged catalog prices identically; only
	// the order number differs.
	svc, _, _ := newTestService(t)

	first, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-2")
	require.NoError(t, err)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Tax, second.Tax)
	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Items, len(first.Items))
	assert.Equal(t, first.Items[0].Extras, second.Items[0].Extras)
}

func TestCreateOrder_EmptyOrder(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.CreateOrder(context.Background(), "cust-1", &models.CreateOrderRequest{
		RestaurantID: "rest-1",
	}, "req-1")

	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeEmptyOrder, oe.Code)
	assert.Empty(t, store.saved)
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.CreateOrder(context.Background(), "cust-ghost", comboRequest(), "req-1")

	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeCustomerNotFound, oe.Code)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, store.saved)
}

func TestCreateOrder_MenuNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := comboRequest()
	req.RestaurantID = "rest-ghost"
	_, err := svc.CreateOrder(context.Background(), "cust-1", req, "req-1")

	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeMenuNotFound, oe.Code)
}

func TestCreateOrder_ValidationFailureLeavesNoRecord(t *testing.T) {
	svc, store, pub := newTestService(t)

	req := comboRequest()
	// Drop the required Drink selection.
	req.Items[0].Extras = req.Items[0].Extras[:1]

	_, err := svc.CreateOrder(context.Background(), "cust-1", req, "req-1")

	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeRequiredExtraMissing, oe.Code)
	assert.Empty(t, store.saved)
	assert.Empty(t, pub.events)
}

func TestCreateOrder_DuplicateNumberRetried(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.failFirst = ErrDuplicateNumber

	ord, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.NotEmpty(t, ord.Number)
}

func TestCreateOrder_StorageFailureSurfaces(t *testing.T) {
	svc, store, pub := newTestService(t)
	boom := errors.New("connection reset")
	store.failFirst = boom

	_, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.events)
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	svc, store, pub := newTestService(t)
	pub.err = errors.New("broker down")

	ord, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)
	assert.NotNil(t, ord)
	require.Len(t, store.saved, 1)
}

func TestCreateOrder_PickupTimeAndInstructions(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := comboRequest()
	req.PickupTimeRequested = "2025-03-14T18:30:00Z"
	req.SpecialInstructions = "no onions"

	ord, err := svc.CreateOrder(context.Background(), "cust-1", req, "req-1")
	require.NoError(t, err)
	require.NotNil(t, ord.PickupTimeRequested)
	assert.Equal(t, time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC), ord.PickupTimeRequested.UTC())
	assert.Equal(t, "no onions", ord.SpecialInstructions)
}

func TestCreateOrder_SnapshotSurvivesCatalogEdit(t *testing.T) {
	svc, _, _ := newTestService(t)
	menu := comboMenu()
	svc.catalog = &fakeCatalog{menus: map[string]*models.Menu{"rest-1": menu}}

	ord, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)

	menu.RestaurantName = "Renamed Grill"
	menu.Groups[0].Items[0].BasePrice = 42.00

	assert.Equal(t, "Alfred's Grill", ord.Restaurant.Name)
	assert.Equal(t, 10.99, ord.Items[0].UnitPrice)
}

func TestGetOrderAndHistory(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateOrder(context.Background(), "cust-1", comboRequest(), "req-1")
	require.NoError(t, err)

	fetched, err := svc.GetOrder(context.Background(), created.Number)
	require.NoError(t, err)
	assert.Equal(t, created.Number, fetched.Number)

	_, err = svc.GetOrder(context.Background(), "ORD-nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	history, err := svc.ListCustomerOrders(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.Number, history[0].Number)
}
