package pgrepo

import (
	"context"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type AddressRepository struct {
	db uow.DBTX
}

func NewAddressRepository(db uow.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, address, latitude, longitude, deleted`

func (r *AddressRepository) Create(ctx context.Context, args repoargs.CreateAddress) (*domain.Address, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO addresses (user_id, address, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING `+addressColumns,
		args.UserID, args.Text, args.Latitude, args.Longitude)
	address, err := scanAddress(row)
	if err != nil {
		return nil, convertErr(err, "creating address for user %d", args.UserID)
	}
	return address, nil
}

func (r *AddressRepository) Find(ctx context.Context, id int64) (*domain.Address, error) {
	row := r.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	address, err := scanAddress(row)
	if err != nil {
		return nil, convertErr(err, "finding address %d", id)
	}
	return address, nil
}

func scanAddress(row rowScanner) (*domain.Address, error) {
	var address domain.Address
	err := row.Scan(&address.ID, &address.UserID, &address.Text, &address.Latitude, &address.Longitude, &address.Deleted)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &address, nil
}
