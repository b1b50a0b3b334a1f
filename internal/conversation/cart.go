package conversation

import (
	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/service"
)

type cartKey struct {
	productID int64
	sizeID    int64
}

// CartLine — позиция корзины: товар, выбранный размер (nil для безразмерных
// товаров) и количество.
type CartLine struct {
	Product  domain.Product
	Size     *domain.Size
	Quantity int
}

// UnitPrice возвращает цену единицы: цена размера перекрывает базовую цену товара.
func (l *CartLine) UnitPrice() money.Money {
	if l.Size != nil {
		return l.Size.Price
	}
	if l.Product.Price != nil {
		return *l.Product.Price
	}
	return money.Money{}
}

func (l *CartLine) Total() money.Money {
	return l.UnitPrice().MulInt(int64(l.Quantity))
}

// Cart живет в памяти сессии и умирает вместе с ней. Порядок добавления
// позиций сохраняется при отображении.
type Cart struct {
	lines map[cartKey]*CartLine
	order []cartKey
}

func NewCart() *Cart {
	return &Cart{lines: make(map[cartKey]*CartLine)}
}

func keyOf(productID int64, size *domain.Size) cartKey {
	key := cartKey{productID: productID}
	if size != nil {
		key.sizeID = size.ID
	}
	return key
}

// Set выставляет количество позиции. Ноль убирает позицию из корзины.
func (c *Cart) Set(product domain.Product, size *domain.Size, quantity int) {
	key := keyOf(product.ID, size)
	if quantity <= 0 {
		c.remove(key)
		return
	}
	if line, ok := c.lines[key]; ok {
		line.Quantity = quantity
		return
	}
	c.lines[key] = &CartLine{Product: product, Size: size, Quantity: quantity}
	c.order = append(c.order, key)
}

// Quantity возвращает текущее количество позиции в корзине.
func (c *Cart) Quantity(productID int64, size *domain.Size) int {
	if line, ok := c.lines[keyOf(productID, size)]; ok {
		return line.Quantity
	}
	return 0
}

// Remove убирает позицию независимо от количества.
func (c *Cart) Remove(productID int64, sizeID int64) {
	c.remove(cartKey{productID: productID, sizeID: sizeID})
}

func (c *Cart) remove(key cartKey) {
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = make(map[cartKey]*CartLine)
	c.order = nil
}

// Lines возвращает позиции в порядке добавления.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, key := range c.order {
		lines = append(lines, *c.lines[key])
	}
	return lines
}

// Total возвращает полную стоимость корзины.
func (c *Cart) Total() money.Money {
	var total money.Money
	for _, key := range c.order {
		total = total.Add(c.lines[key].Total())
	}
	return total
}

// OrderLines конвертирует корзину в позиции размещаемого заказа.
func (c *Cart) OrderLines() []service.OrderLine {
	lines := make([]service.OrderLine, 0, len(c.order))
	for _, key := range c.order {
		line := c.lines[key]
		orderLine := service.OrderLine{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
		if line.Size != nil {
			orderLine.SizeID = &line.Size.ID
		}
		lines = append(lines, orderLine)
	}
	return lines
}
