package domain

import (
	"context"
	"time"

	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
)

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	Find(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, args repoargs.CreateUser) (*User, error)
	UpdateLanguage(ctx context.Context, id int64, language string) error
	List(ctx context.Context) ([]User, error)
}

type AdminRepository interface {
	Find(ctx context.Context, userID int64) (*Admin, error)
	// CreateOwnerIfFirst атомарно создает владельца, если в системе еще нет ни одного
	// админа. Возвращает nil без ошибки, когда админы уже существуют.
	CreateOwnerIfFirst(ctx context.Context, userID int64) (*Admin, error)
	Create(ctx context.Context, args repoargs.AdminFlags) (*Admin, error)
	UpdateFlags(ctx context.Context, args repoargs.AdminFlags) error
	SetLiveMode(ctx context.Context, userID int64, live bool) error
	ListLive(ctx context.Context) ([]Admin, error)
	ListDisplayOnHelp(ctx context.Context) ([]Admin, error)
}

type CategoryRepository interface {
	// ListByParent возвращает активные неудаленные категории уровня parentID
	// (nil — корень дерева).
	ListByParent(ctx context.Context, parentID *int64) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	Find(ctx context.Context, id int64) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Save(ctx context.Context, args repoargs.SaveCategory) (*Category, error)
	SoftDelete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	// ListByCategory возвращает неудаленные товары категории categoryID
	// (nil — товары без категории).
	ListByCategory(ctx context.Context, categoryID *int64) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Find(ctx context.Context, id int64) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	Save(ctx context.Context, args repoargs.SaveProduct) (*Product, error)
	SetImage(ctx context.Context, id int64, image []byte) error
	SoftDelete(ctx context.Context, id int64) error
}

type SizeRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]Size, error)
	Find(ctx context.Context, id int64) (*Size, error)
	// Replace мягко удаляет прежний набор размеров товара и записывает новый.
	Replace(ctx context.Context, productID int64, sizes []repoargs.SizeSpec) error
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*Order, error)
	Find(ctx context.Context, id int64) (*Order, error)
	LatestByUser(ctx context.Context, userID int64, limit uint) ([]Order, error)
	// ListPending возвращает заказы без даты доставки и возврата.
	ListPending(ctx context.Context) ([]Order, error)
	// MarkDelivered и MarkRefunded срабатывают не более одного раза на заказ:
	// повторная попытка возвращает ErrRecordNotFound.
	MarkDelivered(ctx context.Context, id int64, at time.Time) error
	MarkRefunded(ctx context.Context, id int64, at time.Time, reason string) error
}

type OrderItemRepository interface {
	BatchCreate(ctx context.Context, items []repoargs.CreateOrderItem) error
	ListByOrder(ctx context.Context, orderID int64) ([]OrderItem, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*Transaction, error)
	FindByOrder(ctx context.Context, orderID int64) (*Transaction, error)
	SetRefunded(ctx context.Context, id int64, refunded bool) error
	// SumByUser возвращает кошелек пользователя: сумму невозвращенных транзакций.
	SumByUser(ctx context.Context, userID int64) (money.Money, error)
}

type AddressRepository interface {
	Create(ctx context.Context, args repoargs.CreateAddress) (*Address, error)
	Find(ctx context.Context, id int64) (*Address, error)
}
