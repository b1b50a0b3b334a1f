package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
)

func pizzaProduct() domain.Product {
	price := money.MustParse("500")
	return domain.Product{ID: 1, Name: "Пицца", Price: &price}
}

func TestCartSetAndTotal(t *testing.T) {
	cart := NewCart()
	pizza := pizzaProduct()
	size := &domain.Size{ID: 7, ProductID: 2, Name: "36 см", Price: money.MustParse("450")}
	salad := domain.Product{ID: 2, Name: "Салат"}

	cart.Set(pizza, nil, 2)
	cart.Set(salad, size, 1)

	assert.Equal(t, 2, cart.Quantity(pizza.ID, nil))
	assert.Equal(t, 1, cart.Quantity(salad.ID, size))
	assert.Equal(t, money.MustParse("1450"), cart.Total())

	// повторный Set меняет количество существующей позиции
	cart.Set(pizza, nil, 3)
	require.Len(t, cart.Lines(), 2)
	assert.Equal(t, money.MustParse("1950"), cart.Total())
}

func TestCartSetZeroRemoves(t *testing.T) {
	cart := NewCart()
	pizza := pizzaProduct()

	cart.Set(pizza, nil, 2)
	cart.Set(pizza, nil, 0)

	assert.True(t, cart.Empty())
	assert.Zero(t, cart.Quantity(pizza.ID, nil))
}

func TestCartRemoveKeepsOrder(t *testing.T) {
	cart := NewCart()
	first := domain.Product{ID: 1, Name: "Первый"}
	second := domain.Product{ID: 2, Name: "Второй"}
	third := domain.Product{ID: 3, Name: "Третий"}
	cart.Set(first, nil, 1)
	cart.Set(second, nil, 1)
	cart.Set(third, nil, 1)

	cart.Remove(second.ID, 0)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Первый", lines[0].Product.Name)
	assert.Equal(t, "Третий", lines[1].Product.Name)
}

func TestCartLineUnitPricePrefersSize(t *testing.T) {
	base := money.MustParse("500")
	line := CartLine{
		Product:  domain.Product{ID: 1, Price: &base},
		Size:     &domain.Size{ID: 2, Price: money.MustParse("450")},
		Quantity: 2,
	}
	assert.Equal(t, money.MustParse("450"), line.UnitPrice())
	assert.Equal(t, money.MustParse("900"), line.Total())

	line.Size = nil
	assert.Equal(t, money.MustParse("500"), line.UnitPrice())
}

func TestCartOrderLines(t *testing.T) {
	cart := NewCart()
	pizza := pizzaProduct()
	size := domain.Size{ID: 9, ProductID: 1, Name: "32 см", Price: money.MustParse("350")}

	cart.Set(pizza, &size, 2)
	cart.Set(domain.Product{ID: 5, Name: "Салат"}, nil, 1)

	lines := cart.OrderLines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	require.NotNil(t, lines[0].SizeID)
	assert.Equal(t, int64(9), *lines[0].SizeID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Nil(t, lines[1].SizeID)
}
