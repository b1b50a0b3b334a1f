package pgrepo

import (
	"context"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type SizeRepository struct {
	db uow.DBTX
}

func NewSizeRepository(db uow.DBTX) *SizeRepository {
	return &SizeRepository{db: db}
}

const sizeColumns = `id, product_id, name, price, deleted`

func (r *SizeRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Size, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sizeColumns+` FROM sizes WHERE product_id = $1 AND NOT deleted ORDER BY id`, productID)
	if err != nil {
		return nil, convertErr(err, "listing sizes of product %d", productID)
	}
	defer rows.Close()

	var sizes []domain.Size
	for rows.Next() {
		size, scanErr := scanSize(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing sizes of product %d", productID)
		}
		sizes = append(sizes, *size)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing sizes of product %d", productID)
	}
	return sizes, nil
}

func (r *SizeRepository) Find(ctx context.Context, id int64) (*domain.Size, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sizeColumns+` FROM sizes WHERE id = $1`, id)
	size, err := scanSize(row)
	if err != nil {
		return nil, convertErr(err, "finding size %d", id)
	}
	return size, nil
}

// Replace мягко удаляет прежний набор размеров товара и записывает новый.
// Старые записи сохраняются ради позиций уже размещенных заказов.
func (r *SizeRepository) Replace(ctx context.Context, productID int64, sizes []repoargs.SizeSpec) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE sizes SET deleted = TRUE WHERE product_id = $1 AND NOT deleted`, productID); err != nil {
		return convertErr(err, "replacing sizes of product %d", productID)
	}
	for _, size := range sizes {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO sizes (product_id, name, price) VALUES ($1, $2, $3)`,
			productID, size.Name, size.Price.Minor()); err != nil {
			return convertErr(err, "replacing sizes of product %d", productID)
		}
	}
	return nil
}

func scanSize(row rowScanner) (*domain.Size, error) {
	var size domain.Size
	var price int64
	err := row.Scan(&size.ID, &size.ProductID, &size.Name, &price, &size.Deleted)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	size.Price = money.FromMinor(price)
	return &size, nil
}
