package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type AdminRepository struct {
	db uow.DBTX
}

func NewAdminRepository(db uow.DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `user_id, edit_products, receive_orders, display_on_help, is_owner, live_mode`

func (r *AdminRepository) Find(ctx context.Context, userID int64) (*domain.Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE user_id = $1`, userID)
	admin, err := scanAdmin(row)
	if err != nil {
		return nil, convertErr(err, "finding admin %d", userID)
	}
	return admin, nil
}

// CreateOwnerIfFirst атомарно делает userID владельцем, если таблица админов
// пуста. Вставка и проверка выполняются одним запросом: два одновременно
// стартовавших пользователя не станут владельцами оба. Возвращает nil без
// ошибки когда админы уже есть.
func (r *AdminRepository) CreateOwnerIfFirst(ctx context.Context, userID int64) (*domain.Admin, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO admins (user_id, edit_products, receive_orders, display_on_help, is_owner)
		SELECT $1, TRUE, TRUE, TRUE, TRUE
		WHERE NOT EXISTS (SELECT 1 FROM admins)
		RETURNING `+adminColumns, userID)
	admin, err := scanAdmin(row)
	if err != nil {
		if convErr := convertErr(err, "bootstrapping owner %d", userID); !isNotFound(convErr) {
			return nil, convErr
		}
		return nil, nil
	}
	return admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, args repoargs.AdminFlags) (*domain.Admin, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO admins (user_id, edit_products, receive_orders, display_on_help, is_owner, live_mode)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+adminColumns,
		args.UserID, args.EditProducts, args.ReceiveOrders, args.DisplayOnHelp, args.IsOwner, args.LiveMode)
	admin, err := scanAdmin(row)
	if err != nil {
		return nil, convertErr(err, "creating admin %d", args.UserID)
	}
	return admin, nil
}

func (r *AdminRepository) UpdateFlags(ctx context.Context, args repoargs.AdminFlags) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE admins
		SET edit_products = $2, receive_orders = $3, display_on_help = $4, is_owner = $5, live_mode = $6
		WHERE user_id = $1`,
		args.UserID, args.EditProducts, args.ReceiveOrders, args.DisplayOnHelp, args.IsOwner, args.LiveMode)
	if err != nil {
		return convertErr(err, "updating admin %d", args.UserID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating admin %d", args.UserID)
	}
	return nil
}

func (r *AdminRepository) SetLiveMode(ctx context.Context, userID int64, live bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE admins SET live_mode = $2 WHERE user_id = $1`, userID, live)
	if err != nil {
		return convertErr(err, "switching live mode of admin %d", userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "switching live mode of admin %d", userID)
	}
	return nil
}

func (r *AdminRepository) ListLive(ctx context.Context) ([]domain.Admin, error) {
	return r.list(ctx, `SELECT `+adminColumns+` FROM admins WHERE live_mode AND receive_orders`, "listing live admins")
}

func (r *AdminRepository) ListDisplayOnHelp(ctx context.Context) ([]domain.Admin, error) {
	return r.list(ctx, `SELECT `+adminColumns+` FROM admins WHERE display_on_help`, "listing help admins")
}

func (r *AdminRepository) list(ctx context.Context, query string, errMsg string) ([]domain.Admin, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		admin, scanErr := scanAdmin(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "%s", errMsg)
		}
		admins = append(admins, *admin)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "%s", errMsg)
	}
	return admins, nil
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(&admin.UserID, &admin.EditProducts, &admin.ReceiveOrders,
		&admin.DisplayOnHelp, &admin.IsOwner, &admin.LiveMode)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &admin, nil
}
