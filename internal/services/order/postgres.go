package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LutherWJ/AlfredOrdering/internal/database"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
)

// PostgresStore persists order records in PostgreSQL. The order row and its
// line rows are written in one transaction so no partial order is ever
// observable.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates an order store backed by the given database
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save writes the whole order record atomically. A unique-index collision on
// the order number maps to ErrDuplicateNumber so the caller can retry with a
// fresh number.
func (s *PostgresStore) Save(ctx context.Context, ord *models.Order) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		ord.Number, ord.Customer, ord.Restaurant, ord.Status,
		ord.Subtotal, ord.Tax, ord.Total,
		ord.PickupTimeRequested, nullIfEmpty(ord.SpecialInstructions), ord.OrderDatetime,
	).Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range ord.Items {
		_, err := tx.Exec(ctx, database.InsertOrderItemSQL,
			ord.ID, item.LineID, item.MenuItemID, item.Name, nullIfEmpty(item.Description),
			item.UnitPrice, item.Quantity, item.Extras, item.LineSubtotal)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return ord, nil
}

// GetByNumber fetches one order with its lines.
func (s *PostgresStore) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	row := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, number)

	ord, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", number, err)
	}

	if err := s.loadItems(ctx, ord); err != nil {
		return nil, err
	}
	return ord, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (s *PostgresStore) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, database.GetOrdersByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// loadItems attaches the order's line snapshots
func (s *PostgresStore) loadItems(ctx context.Context, ord *models.Order) error {
	rows, err := s.db.Query(ctx, database.GetOrderItemsSQL, ord.ID)
	if err != nil {
		return fmt.Errorf("load items for order %s: %w", ord.Number, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.LineID, &item.MenuItemID, &item.Name, &item.Description,
			&item.UnitPrice, &item.Quantity, &item.Extras, &item.LineSubtotal)
		if err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		ord.Items = append(ord.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var ord models.Order
	err := row.Scan(&ord.ID, &ord.Number, &ord.Customer, &ord.Restaurant, &ord.Status,
		&ord.Subtotal, &ord.Tax, &ord.Total,
		&ord.PickupTimeRequested, &ord.PickupTimeReady, &ord.SpecialInstructions,
		&ord.IsCancelled, &ord.CancelledAt,
		&ord.OrderDatetime, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
