package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/shophub/internal/database"
	"github.com/safar/shophub/internal/models"
)

var transitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to
// another. Delivered and cancelled are terminal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order to the next status if the transition is
// legal. The status check and the write happen in one transaction.
func UpdateStatus(ctx context.Context, db *sql.DB, id, status string) (*models.Order, error) {
	return updateStatus(ctx, db, id, "", status)
}

// UpdateStatusForVendor is UpdateStatus scoped to the caller's catalog: the
// order must contain at least one item sold by the vendor, otherwise the
// order is reported as not found, same as foreign-vendor product edits.
func UpdateStatusForVendor(ctx context.Context, db *sql.DB, id, vendorID, status string) (*models.Order, error) {
	return updateStatus(ctx, db, id, vendorID, status)
}

func updateStatus(ctx context.Context, db *sql.DB, id, vendorID, status string) (*models.Order, error) {
	var order *models.Order

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrOrderNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		if vendorID != "" {
			var owned bool
			err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (
					SELECT 1 FROM order_items oi
					JOIN products p ON p.id = oi.product_id
					WHERE oi.order_id = $1 AND p.vendor_id = $2
				)`, id, vendorID).Scan(&owned)
			if err != nil {
				return fmt.Errorf("check order vendor: %w", err)
			}
			if !owned {
				return database.ErrOrderNotFound
			}
		}

		if !CanTransition(current, status) {
			return database.ErrInvalidTransition
		}

		order = &models.Order{}
		err = tx.QueryRowContext(ctx,
			`UPDATE orders
			 SET status = $1, updated_at = NOW(), version = version + 1
			 WHERE id = $2
			 RETURNING id, user_id, order_number, status, total_amount, created_at, updated_at, version`,
			status, id).Scan(
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
			return fmt.Errorf("update order status: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}
