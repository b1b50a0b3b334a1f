package domain

import (
	"fmt"
	"time"

	"github.com/avolkhin/shopbot/internal/money"
)

// User — покупатель, написавший боту хотя бы один раз. ID совпадает с идентификатором
// пользователя в чат-платформе.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Language  string
	CreatedAt time.Time
}

// String описывает юзера наилучшим доступным способом.
func (u *User) String() string {
	switch {
	case u.Username != "":
		return "@" + u.Username
	case u.LastName != "":
		return u.FirstName + " " + u.LastName
	default:
		return u.FirstName
	}
}

// IdentifiableString описывает юзера так, чтобы из строки можно было восстановить его ID.
// Используется в клавиатурах выбора пользователя.
func (u *User) IdentifiableString() string {
	return fmt.Sprintf("user_%d (%s)", u.ID, u.String())
}

func (u *User) FullName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// Admin — запись прав администратора. Права независимы друг от друга.
type Admin struct {
	UserID        int64
	EditProducts  bool
	ReceiveOrders bool
	DisplayOnHelp bool
	IsOwner       bool
	// LiveMode выставляется когда админ слушает поток новых заказов. Сбрасывается
	// при входе в новую сессию: в живой режим нужно входить заново каждый раз.
	LiveMode bool
}

// Category — категория товаров. Категории образуют дерево через ParentID.
type Category struct {
	ID       int64
	Name     string
	Active   bool
	Deleted  bool
	ParentID *int64
}

// Product — товар. Price равный nil означает, что цена задана на уровне размеров
// (или товар не продается).
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       *money.Money
	Image       []byte
	Deleted     bool
	CategoryID  *int64
}

// Size — вариант товара (размер) со своей ценой, перекрывающей базовую.
type Size struct {
	ID        int64
	ProductID int64
	Name      string
	Price     money.Money
	Deleted   bool
}

// Address — снапшот адреса доставки, сделанный в момент оформления заказа.
type Address struct {
	ID        int64
	UserID    int64
	Text      string
	Latitude  *float64
	Longitude *float64
	Deleted   bool
}

// Order — размещенный заказ. Позиции лежат в OrderItem, денежный эффект — в Transaction.
type Order struct {
	ID           int64
	UserID       int64
	CreatedAt    time.Time
	DeliveryDate *time.Time
	RefundDate   *time.Time
	RefundReason string
	Notes        string
	AddressID    *int64
	IsPickup     bool
	Phone        string
}

// Cleared сообщает, обработан ли заказ (доставлен или возвращен).
func (o *Order) Cleared() bool {
	return o.DeliveryDate != nil || o.RefundDate != nil
}

// OrderItem — одна купленная единица товара. Количество N в корзине превращается
// в N записей, каждая со ссылкой на выбранный размер.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	SizeID    *int64
}

// Transaction — денежный эффект заказа. Значение отрицательное: покупка списывает
// средства. Refunded выставляется при возврате, значение при этом не меняется.
type Transaction struct {
	ID       int64
	UserID   int64
	OrderID  *int64
	Value    money.Money
	Refunded bool
	Notes    string
}
