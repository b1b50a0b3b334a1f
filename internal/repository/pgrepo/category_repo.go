package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type CategoryRepository struct {
	db uow.DBTX
}

func NewCategoryRepository(db uow.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, active, deleted, parent_id`

func (r *CategoryRepository) ListByParent(ctx context.Context, parentID *int64) ([]domain.Category, error) {
	return r.list(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE NOT deleted AND active AND parent_id IS NOT DISTINCT FROM $1
		ORDER BY name`, []any{parentID}, "listing categories")
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE NOT deleted ORDER BY name`,
		nil, "listing all categories")
}

func (r *CategoryRepository) Find(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND NOT deleted`, id)
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "finding category %d", id)
	}
	return category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1 AND NOT deleted`, name)
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "finding category by name %s", name)
	}
	return category, nil
}

// Save создает категорию при нулевом ID и обновляет существующую иначе.
func (r *CategoryRepository) Save(ctx context.Context, args repoargs.SaveCategory) (*domain.Category, error) {
	var row pgx.Row
	if args.ID == 0 {
		row = r.db.QueryRow(ctx, `
			INSERT INTO categories (name, parent_id, active)
			VALUES ($1, $2, $3)
			RETURNING `+categoryColumns,
			args.Name, args.ParentID, args.Active)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE categories SET name = $2, parent_id = $3, active = $4
			WHERE id = $1 AND NOT deleted
			RETURNING `+categoryColumns,
			args.ID, args.Name, args.ParentID, args.Active)
	}
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "saving category %s", args.Name)
	}
	return category, nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE categories SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return convertErr(err, "deleting category %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting category %d", id)
	}
	return nil
}

func (r *CategoryRepository) list(ctx context.Context, query string, args []any, errMsg string) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "%s", errMsg)
		}
		categories = append(categories, *category)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "%s", errMsg)
	}
	return categories, nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(&category.ID, &category.Name, &category.Active, &category.Deleted, &category.ParentID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &category, nil
}
