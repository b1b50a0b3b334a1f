package repoargs

import (
	"time"

	"github.com/avolkhin/shopbot/internal/money"
)

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	AdminRepoName       RepositoryName = "admin"
	CategoryRepoName    RepositoryName = "category"
	ProductRepoName     RepositoryName = "product"
	SizeRepoName        RepositoryName = "size"
	OrderRepoName       RepositoryName = "order"
	OrderItemRepoName   RepositoryName = "order_item"
	TransactionRepoName RepositoryName = "transaction"
	AddressRepoName     RepositoryName = "address"
)

type CreateUser struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Language  string
}

// AdminFlags используется и при создании админа и при обновлении его прав.
type AdminFlags struct {
	UserID        int64
	EditProducts  bool
	ReceiveOrders bool
	DisplayOnHelp bool
	IsOwner       bool
	LiveMode      bool
}

type SaveCategory struct {
	// ID равный нулю означает создание новой категории.
	ID       int64
	Name     string
	ParentID *int64
	Active   bool
}

type SaveProduct struct {
	// ID равный нулю означает создание нового товара.
	ID          int64
	Name        string
	Description string
	// Price равный nil означает что цена определяется размерами.
	Price      *money.Money
	CategoryID *int64
}

type SizeSpec struct {
	Name  string
	Price money.Money
}

type CreateAddress struct {
	UserID    int64
	Text      string
	Latitude  *float64
	Longitude *float64
}

type CreateOrder struct {
	UserID    int64
	AddressID *int64
	IsPickup  bool
	Phone     string
	Notes     string
	CreatedAt time.Time
}

type CreateOrderItem struct {
	OrderID   int64
	ProductID int64
	SizeID    *int64
}

type CreateTransaction struct {
	UserID  int64
	OrderID *int64
	Value   money.Money
	Notes   string
}
