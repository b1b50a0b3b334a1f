package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
)

type OrderServiceTestSuite struct {
	servicesSuite
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) TestPlaceOrderExpandsQuantities() {
	pizzaID, sizeID := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася"})

	order, err := s.services.OrderService.PlaceOrder(s.T().Context(), PlaceOrderArgs{
		UserID: 100,
		Address: &repoargs.CreateAddress{
			UserID: 100,
			Text:   "ул. Ленина, 1",
		},
		Phone: "+7 900 123-45-67",
		Notes: "без лука",
		Lines: []OrderLine{
			{ProductID: pizzaID, SizeID: &sizeID, Quantity: 2},
			{ProductID: pizzaID, Quantity: 1},
		},
		Total: money.MustParse("1800"),
	})
	s.Require().NoError(err)
	s.Require().NotNil(order.AddressID)

	items := s.store.OrderItems()
	s.Require().Len(items, 3)
	withSize := 0
	for _, item := range items {
		s.Equal(order.ID, item.OrderID)
		if item.SizeID != nil {
			withSize++
		}
	}
	s.Equal(2, withSize)

	trans := s.store.Transactions()
	s.Require().Len(trans, 1)
	s.True(trans[0].Value.Equal(money.MustParse("1800").Neg()))
}

func (s *OrderServiceTestSuite) TestDeliverExactlyOnce() {
	pizzaID, _ := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася"})
	orderID := s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())

	order, err := s.services.OrderService.Deliver(s.T().Context(), orderID)
	s.Require().NoError(err)
	s.Require().NotNil(order.DeliveryDate)

	_, err = s.services.OrderService.Deliver(s.T().Context(), orderID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)

	// выполненный заказ нельзя и вернуть
	_, err = s.services.OrderService.Refund(s.T().Context(), orderID, "передумал")
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *OrderServiceTestSuite) TestRefundMarksOrderAndTransaction() {
	pizzaID, _ := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася"})
	orderID := s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())

	order, err := s.services.OrderService.Refund(s.T().Context(), orderID, "кончилось тесто")
	s.Require().NoError(err)
	s.Require().NotNil(order.RefundDate)
	s.Equal("кончилось тесто", order.RefundReason)

	trans := s.store.Transactions()
	s.Require().Len(trans, 1)
	s.True(trans[0].Refunded)
	// сумма транзакции при возврате не меняется
	s.True(trans[0].Value.Equal(money.MustParse("500").Neg()))

	_, err = s.services.OrderService.Refund(s.T().Context(), orderID, "еще раз")
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *OrderServiceTestSuite) TestDetailsGroupsItems() {
	pizzaID, sizeID := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася", Username: "vasya"})

	order, err := s.services.OrderService.PlaceOrder(s.T().Context(), PlaceOrderArgs{
		UserID:   100,
		IsPickup: true,
		Phone:    "+7 900 123-45-67",
		Lines: []OrderLine{
			{ProductID: pizzaID, SizeID: &sizeID, Quantity: 3},
			{ProductID: pizzaID, Quantity: 1},
		},
		Total: money.MustParse("2450"),
	})
	s.Require().NoError(err)

	details, err := s.services.OrderService.Details(s.T().Context(), order)
	s.Require().NoError(err)
	s.Require().Len(details.Lines, 2)

	bySize := map[bool]OrderDetailLine{}
	for _, line := range details.Lines {
		bySize[line.Size != nil] = line
	}
	s.Equal(3, bySize[true].Quantity)
	s.Equal("36 см", bySize[true].Size.Name)
	s.Equal(1, bySize[false].Quantity)
	s.True(details.Total.Equal(money.MustParse("2450")))
	s.Nil(details.Address)
	s.Equal("@vasya", details.User.String())
}

func (s *OrderServiceTestSuite) TestLatestOrdersNewestFirst() {
	pizzaID, _ := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася"})
	first := s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())
	second := s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())
	s.store.SeedOrder(domain.Order{UserID: 200, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())

	cases := []struct {
		name    string
		limit   uint
		wantIDs []int64
	}{
		{name: "limit one", limit: 1, wantIDs: []int64{second}},
		{name: "all of the user", limit: 10, wantIDs: []int64{second, first}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			orders, err := s.services.OrderService.Latest(s.T().Context(), 100, tc.limit)
			s.Require().NoError(err)
			s.Require().Len(orders, len(tc.wantIDs))
			for i, want := range tc.wantIDs {
				s.Equal(want, orders[i].ID)
			}
		})
	}
}
