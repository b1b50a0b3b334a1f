package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, username, language, created_at`

// Find ищет пользователя по его идентификатору в чат-платформе. Возвращает
// domain.ErrRecordNotFound если запись отсутствует.
func (r *UserRepository) Find(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user %d", id)
	}
	return user, nil
}

// Create создает пользователя. Идентификатор приходит от чат-платформы, а не
// из сиквенса. Конфликт идентификатора возвращает domain.ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, first_name, last_name, username, language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		args.ID, args.FirstName, args.LastName, args.Username, args.Language)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user %d", args.ID)
	}
	return user, nil
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, id int64, language string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET language = $2 WHERE id = $1`, id, language)
	if err != nil {
		return convertErr(err, "updating language of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating language of user %d", id)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, convertErr(err, "listing users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing users")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing users")
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.Language, &user.CreatedAt)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
