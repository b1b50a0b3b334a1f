package money

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// ErrParse возвращается конструктором Parse когда строка не является числом.
var ErrParse = errors.New("money: unparsable value")

// exponent хранит количество знаков после запятой у валюты. Значение общее для всего
// процесса и задается один раз при старте из конфига.
var exponent atomic.Int32

//nolint:gochecknoinits
func init() {
	exponent.Store(2) //nolint:mnd
}

// SetExponent задает количество минорных знаков валюты. Вызывается один раз при старте приложения.
func SetExponent(exp int) {
	exponent.Store(int32(exp)) //nolint:gosec
}

// Exponent возвращает текущее количество минорных знаков валюты.
func Exponent() int {
	return int(exponent.Load())
}

// Money — денежная величина с фиксированной точкой. Хранит целое количество минорных
// единиц (копеек, центов и т.д.). Значение иммутабельно, все операции возвращают новое.
type Money struct {
	units int64
}

// FromMinor создает Money из целого количества минорных единиц.
func FromMinor(units int64) Money {
	return Money{units: units}
}

// FromFloat создает Money из числа в мажорных единицах, округляя до ближайшей минорной.
func FromFloat(value float64) Money {
	return FromDecimal(decimal.NewFromFloat(value))
}

// FromDecimal создает Money из decimal.Decimal в мажорных единицах.
func FromDecimal(d decimal.Decimal) Money {
	return Money{units: d.Shift(exponent.Load()).Round(0).IntPart()}
}

// Parse создает Money из десятичной строки. Запятая принимается как разделитель
// наравне с точкой. Возвращает ошибку ErrParse если строка не число.
func Parse(s string) (Money, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return FromDecimal(d), nil
}

// MustParse то же что и Parse, но паникует при ошибке. Для констант в тестах и сидах.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Minor возвращает значение в минорных единицах.
func (m Money) Minor() int64 {
	return m.units
}

func (m Money) Add(other Money) Money {
	return Money{units: m.units + other.units}
}

func (m Money) Sub(other Money) Money {
	return Money{units: m.units - other.units}
}

// MulInt умножает на целый скаляр (например количество товара в корзине).
func (m Money) MulInt(n int64) Money {
	return Money{units: m.units * n}
}

// DivInt делит на целый скаляр с округлением вниз.
func (m Money) DivInt(n int64) Money {
	q := m.units / n
	if (m.units%n != 0) && ((m.units < 0) != (n < 0)) {
		q--
	}
	return Money{units: q}
}

func (m Money) Neg() Money {
	return Money{units: -m.units}
}

// Cmp возвращает -1, 0 или 1 при сравнении с other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.units < other.units:
		return -1
	case m.units > other.units:
		return 1
	default:
		return 0
	}
}

func (m Money) Equal(other Money) bool {
	return m.units == other.units
}

func (m Money) IsZero() bool {
	return m.units == 0
}

// Decimal возвращает значение в мажорных единицах.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -exponent.Load())
}

// String рендерит значение как десятичную строку с фиксированным числом знаков,
// например "12.50". Шаблон с символом валюты живет в локализации.
func (m Money) String() string {
	return m.Decimal().StringFixed(exponent.Load())
}
