package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, order_id, value, refunded, notes`

// Create создает транзакцию. Повторная транзакция по тому же заказу упирается
// в уникальный индекс и возвращает domain.ErrDuplicateKey.
func (r *TransactionRepository) Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, order_id, value, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+transactionColumns,
		args.UserID, args.OrderID, args.Value.Minor(), args.Notes)
	trans, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for user %d", args.UserID)
	}
	return trans, nil
}

func (r *TransactionRepository) FindByOrder(ctx context.Context, orderID int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE order_id = $1`, orderID)
	trans, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding transaction of order %d", orderID)
	}
	return trans, nil
}

func (r *TransactionRepository) SetRefunded(ctx context.Context, id int64, refunded bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE transactions SET refunded = $2 WHERE id = $1`, id, refunded)
	if err != nil {
		return convertErr(err, "refunding transaction %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "refunding transaction %d", id)
	}
	return nil
}

// SumByUser возвращает сумму невозвращенных транзакций пользователя.
func (r *TransactionRepository) SumByUser(ctx context.Context, userID int64) (money.Money, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM transactions WHERE user_id = $1 AND NOT refunded`, userID).Scan(&sum)
	if err != nil {
		return money.Money{}, convertErr(err, "summing transactions of user %d", userID)
	}
	return money.FromMinor(sum), nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var trans domain.Transaction
	var value int64
	err := row.Scan(&trans.ID, &trans.UserID, &trans.OrderID, &value, &trans.Refunded, &trans.Notes)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	trans.Value = money.FromMinor(value)
	return &trans, nil
}
