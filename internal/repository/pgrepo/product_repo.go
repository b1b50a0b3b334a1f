package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type ProductRepository struct {
	db uow.DBTX
}

func NewProductRepository(db uow.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// price хранится в минорных единицах валюты, NULL означает товар без базовой цены
const productColumns = `id, name, description, price, image, deleted, category_id`

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	return r.list(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE NOT deleted AND category_id IS NOT DISTINCT FROM $1
		ORDER BY name`, []any{categoryID}, "listing products")
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE NOT deleted ORDER BY name`,
		nil, "listing all products")
}

func (r *ProductRepository) Find(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product %d", id)
	}
	return product, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1 AND NOT deleted`, name)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product by name %s", name)
	}
	return product, nil
}

// Save создает товар при нулевом ID и обновляет существующий иначе.
func (r *ProductRepository) Save(ctx context.Context, args repoargs.SaveProduct) (*domain.Product, error) {
	var price *int64
	if args.Price != nil {
		minor := args.Price.Minor()
		price = &minor
	}

	var row pgx.Row
	if args.ID == 0 {
		row = r.db.QueryRow(ctx, `
			INSERT INTO products (name, description, price, category_id)
			VALUES ($1, $2, $3, $4)
			RETURNING `+productColumns,
			args.Name, args.Description, price, args.CategoryID)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE products SET name = $2, description = $3, price = $4, category_id = $5
			WHERE id = $1 AND NOT deleted
			RETURNING `+productColumns,
			args.ID, args.Name, args.Description, price, args.CategoryID)
	}
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "saving product %s", args.Name)
	}
	return product, nil
}

func (r *ProductRepository) SetImage(ctx context.Context, id int64, image []byte) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET image = $2 WHERE id = $1 AND NOT deleted`, id, image)
	if err != nil {
		return convertErr(err, "saving image of product %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "saving image of product %d", id)
	}
	return nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return convertErr(err, "deleting product %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting product %d", id)
	}
	return nil
}

func (r *ProductRepository) list(ctx context.Context, query string, args []any, errMsg string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "%s", errMsg)
		}
		products = append(products, *product)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "%s", errMsg)
	}
	return products, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var price *int64
	err := row.Scan(&product.ID, &product.Name, &product.Description, &price,
		&product.Image, &product.Deleted, &product.CategoryID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if price != nil {
		m := money.FromMinor(*price)
		product.Price = &m
	}
	return &product, nil
}
