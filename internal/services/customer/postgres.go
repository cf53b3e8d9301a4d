// Package customer provides read access to customer accounts. Registration
// and profile management are owned by the auth service; the ordering engine
// only resolves a customer to freeze a snapshot onto the order.
package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LutherWJ/AlfredOrdering/internal/database"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
	"github.com/LutherWJ/AlfredOrdering/internal/services/order"
)

// PostgresProvider reads customer accounts from PostgreSQL.
type PostgresProvider struct {
	db *database.DB
}

// NewPostgresProvider creates a customer provider backed by the given database
func NewPostgresProvider(db *database.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// GetCustomer resolves a customer account by id.
func (p *PostgresProvider) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	var c models.Customer
	err := p.db.QueryRow(ctx, database.GetCustomerSQL, customerID).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.PreferredName, &c.Email,
		&c.Phone, &c.StudentID, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.OrderError{Code: order.CodeCustomerNotFound, ID: customerID}
		}
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	return &c, nil
}
