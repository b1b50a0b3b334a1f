package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, created_at, delivery_date, refund_date, refund_reason,
	notes, address_id, is_pickup, phone`

func (r *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, address_id, is_pickup, phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orderColumns,
		args.UserID, args.AddressID, args.IsPickup, args.Phone, args.Notes, args.CreatedAt)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for user %d", args.UserID)
	}
	return order, nil
}

func (r *OrderRepository) Find(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order %d", id)
	}
	return order, nil
}

func (r *OrderRepository) LatestByUser(ctx context.Context, userID int64, limit uint) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, []any{userID, limit}, "listing orders of user %d", userID)
}

func (r *OrderRepository) ListPending(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE delivery_date IS NULL AND refund_date IS NULL
		ORDER BY created_at`, nil, "listing pending orders")
}

// MarkDelivered закрывает заказ не более одного раза: условие на пустые даты
// гарантирует, что повторное нажатие кнопки не перетрет первую обработку.
func (r *OrderRepository) MarkDelivered(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET delivery_date = $2
		WHERE id = $1 AND delivery_date IS NULL AND refund_date IS NULL`, id, at)
	if err != nil {
		return convertErr(err, "marking order %d delivered", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "marking order %d delivered", id)
	}
	return nil
}

func (r *OrderRepository) MarkRefunded(ctx context.Context, id int64, at time.Time, reason string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET refund_date = $2, refund_reason = $3
		WHERE id = $1 AND delivery_date IS NULL AND refund_date IS NULL`, id, at, reason)
	if err != nil {
		return convertErr(err, "marking order %d refunded", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "marking order %d refunded", id)
	}
	return nil
}

func (r *OrderRepository) list(
	ctx context.Context,
	query string,
	args []any,
	errFormat string,
	errArgs ...any,
) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, errFormat, errArgs...)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, errFormat, errArgs...)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, errFormat, errArgs...)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.UserID, &order.CreatedAt, &order.DeliveryDate, &order.RefundDate,
		&order.RefundReason, &order.Notes, &order.AddressID, &order.IsPickup, &order.Phone)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}
