package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
	"github.com/safar/shophub/internal/store"
)

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
}

// Checkout turns the shopper's cart lines into an order. Every product is
// locked and re-checked for availability inside one serializable
// transaction; the total is recomputed from the locked prices rather than
// trusted from the cart snapshot. The created order starts as pending.
func Checkout(ctx context.Context, db *sql.DB, userID string, lines []store.CartLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var order *models.Order

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
			userID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}
		if !exists {
			return database.ErrUserNotFound
		}

		totalAmount := decimal.Zero
		productPrices := make(map[string]decimal.Decimal)
		productNames := make(map[string]string)

		for _, line := range lines {
			var (
				price   decimal.Decimal
				name    string
				inStock bool
			)

			err := tx.QueryRowContext(ctx,
				`SELECT price, name, in_stock
				 FROM products
				 WHERE id = $1
				 FOR UPDATE NOWAIT`,
				line.Product.ID).Scan(&price, &name, &inStock)
			if err != nil {
				if err == sql.ErrNoRows {
					return database.ErrProductNotFound
				}
				return fmt.Errorf("lock product %s: %w", line.Product.ID, err)
			}

			if !inStock {
				return database.ErrProductUnavailable
			}

			productPrices[line.Product.ID] = price
			productNames[line.Product.ID] = name
			totalAmount = totalAmount.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		orderID := uuid.NewString()
		orderNumber := generateOrderNumber()
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (id, user_id, order_number, status, total_amount, created_at, updated_at, version)
			 VALUES ($1, $2, $3, $4, $5, NOW(), NOW(), 1)
			 RETURNING id`,
			orderID, userID, orderNumber, models.OrderStatusPending, totalAmount).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, line := range lines {
			unitPrice := productPrices[line.Product.ID]
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, subtotal, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
				orderID, line.Product.ID, productNames[line.Product.ID], line.Quantity, unitPrice, subtotal)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		order = &models.Order{ID: orderID}
		err = tx.QueryRowContext(ctx,
			`SELECT order_number, user_id, status, total_amount, created_at, updated_at, version
			 FROM orders WHERE id = $1`,
			orderID).Scan(
			&order.OrderNumber,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.Version,
		)
		if err != nil {
			return fmt.Errorf("fetch created order: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id string) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, user_id, order_number, status, total_amount, created_at, updated_at, version
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, name, quantity, unit_price, subtotal, created_at
		FROM order_items
		WHERE order_id = $1`

	rows, err := db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

func ListOrdersCursor(ctx context.Context, db *sql.DB, userID string, cursor string, limit int) (*CursorPage, error) {
	cursorData, hasCursor, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT id, order_number, status, total_amount, created_at, updated_at, version
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	args := []interface{}{userID, limit + 1}

	if hasCursor {
		query = `
			SELECT id, order_number, status, total_amount, created_at, updated_at, version
			FROM orders
			WHERE user_id = $1
			  AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`
		args = []interface{}{userID, cursorData.CreatedAt, cursorData.ID, limit + 1}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(list) > limit
	if hasMore {
		list = list[:limit]
	}

	var nextCursor string
	if hasMore && len(list) > 0 {
		last := list[len(list)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return &CursorPage{
		Items:      list,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}
