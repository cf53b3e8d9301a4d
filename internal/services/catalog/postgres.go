// Package catalog provides read access to restaurant menus. Menu authoring
// lives in a separate admin surface; the ordering engine only ever reads a
// full menu document and treats it as a snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LutherWJ/AlfredOrdering/internal/database"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
	"github.com/LutherWJ/AlfredOrdering/internal/services/order"
)

// PostgresProvider reads menus from PostgreSQL. The group/item/extra tree is
// stored as one JSONB document per restaurant, mirroring how the menu editor
// writes it.
type PostgresProvider struct {
	db *database.DB
}

// NewPostgresProvider creates a catalog provider backed by the given database
func NewPostgresProvider(db *database.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// GetMenu returns the full menu for a restaurant.
func (p *PostgresProvider) GetMenu(ctx context.Context, restaurantID string) (*models.Menu, error) {
	var menu models.Menu
	err := p.db.QueryRow(ctx, database.GetMenuSQL, restaurantID).Scan(
		&menu.RestaurantID, &menu.RestaurantName, &menu.RestaurantLocation, &menu.RestaurantPhone,
		&menu.IsActive, &menu.Groups, &menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &order.OrderError{Code: order.CodeMenuNotFound, ID: restaurantID}
		}
		return nil, fmt.Errorf("get menu for restaurant %s: %w", restaurantID, err)
	}
	return &menu, nil
}
