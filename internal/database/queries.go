package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, customer, restaurant, status, subtotal_amount, tax_amount, total_amount,
			pickup_time_requested, special_instructions, order_datetime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, order_item_id, menu_item_id, item_name, description,
			unit_price, quantity, extras, line_subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	GetOrderByNumberSQL = `
		SELECT id, number, customer, restaurant, status, subtotal_amount, tax_amount, total_amount,
			   pickup_time_requested, pickup_time_ready, COALESCE(special_instructions, ''), is_cancelled, cancelled_at,
			   order_datetime, created_at, updated_at
		FROM orders WHERE number = $1`

	GetOrdersByCustomerSQL = `
		SELECT id, number, customer, restaurant, status, subtotal_amount, tax_amount, total_amount,
			   pickup_time_requested, pickup_time_ready, COALESCE(special_instructions, ''), is_cancelled, cancelled_at,
			   order_datetime, created_at, updated_at
		FROM orders WHERE customer->>'customer_id' = $1
		ORDER BY created_at DESC`

	GetOrderItemsSQL = `
		SELECT order_item_id, menu_item_id, item_name, COALESCE(description, ''),
			   unit_price, quantity, extras, line_subtotal
		FROM order_items WHERE order_id = $1
		ORDER BY id ASC`
)

// Catalog queries
const (
	GetMenuSQL = `
		SELECT restaurant_id, restaurant_name, restaurant_location, COALESCE(restaurant_phone, ''),
			   is_active, groups, created_at, updated_at
		FROM menus WHERE restaurant_id = $1`
)

// Customer queries
const (
	GetCustomerSQL = `
		SELECT id, fname, lname, COALESCE(preferred_name, ''), email,
			   COALESCE(phone, ''), COALESCE(student_id, ''), is_active
		FROM customers WHERE id = $1`
)
