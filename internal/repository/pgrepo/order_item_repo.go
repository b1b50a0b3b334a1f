package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type OrderItemRepository struct {
	db uow.DBTX
}

func NewOrderItemRepository(db uow.DBTX) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

// BatchCreate вставляет позиции заказа одним батчем.
func (r *OrderItemRepository) BatchCreate(ctx context.Context, items []repoargs.CreateOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := new(pgx.Batch)
	for _, item := range items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, size_id) VALUES ($1, $2, $3)`,
			item.OrderID, item.ProductID, item.SizeID)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return convertErr(err, "creating order items")
		}
	}
	return nil
}

func (r *OrderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, size_id FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, convertErr(err, "listing items of order %d", orderID)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if scanErr := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SizeID); scanErr != nil {
			return nil, convertErr(scanErr, "listing items of order %d", orderID)
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing items of order %d", orderID)
	}
	return items, nil
}
