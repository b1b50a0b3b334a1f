package service

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/internal/telegram"
)

type UserServiceTestSuite struct {
	servicesSuite
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func updateFrom(userID int64) *telegram.Update {
	return &telegram.Update{
		UserID:    userID,
		ChatID:    userID,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Username:  gofakeit.Username(),
		Language:  "ru",
		Message:   &telegram.Message{Text: "/start"},
	}
}

// Первый увиденный пользователь становится владельцем со всеми правами,
// все последующие — обычными покупателями.
func (s *UserServiceTestSuite) TestRegisterOrFetchFirstUserBecomesOwner() {
	cases := []struct {
		name      string
		userID    int64
		wantOwner bool
	}{
		{name: "first user", userID: 100, wantOwner: true},
		{name: "second user", userID: 200, wantOwner: false},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			user, admin, err := s.services.UserService.RegisterOrFetch(s.T().Context(), updateFrom(tc.userID))
			s.Require().NoError(err)
			s.Equal(tc.userID, user.ID)

			if !tc.wantOwner {
				s.Nil(admin)
				return
			}
			s.Require().NotNil(admin)
			s.True(admin.IsOwner)
			s.True(admin.EditProducts)
			s.True(admin.ReceiveOrders)
		})
	}
}

func (s *UserServiceTestSuite) TestRegisterOrFetchIsIdempotent() {
	upd := updateFrom(100)

	first, _, err := s.services.UserService.RegisterOrFetch(s.T().Context(), upd)
	s.Require().NoError(err)
	again, _, err := s.services.UserService.RegisterOrFetch(s.T().Context(), upd)
	s.Require().NoError(err)

	s.Equal(first.ID, again.ID)
	s.Equal(first.FirstName, again.FirstName)

	users, err := s.services.UserService.List(s.T().Context())
	s.Require().NoError(err)
	s.Len(users, 1)
	s.Len(s.store.Admins(), 1)
}

// Живой режим не переживает начало новой сессии.
func (s *UserServiceTestSuite) TestRegisterOrFetchResetsLiveMode() {
	s.store.SeedUser(domain.User{ID: 1, FirstName: "Оля"})
	s.store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true, ReceiveOrders: true, LiveMode: true})

	_, admin, err := s.services.UserService.RegisterOrFetch(s.T().Context(), updateFrom(1))
	s.Require().NoError(err)
	s.Require().NotNil(admin)
	s.False(admin.LiveMode)
	s.False(s.store.Admins()[0].LiveMode)
}

func (s *UserServiceTestSuite) TestCreditSumsUnrefundedTransactions() {
	pizzaID, _ := s.seedCatalog()
	s.store.SeedUser(domain.User{ID: 100, FirstName: "Вася"})
	s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("500").Neg())
	refunded := s.store.SeedOrder(domain.Order{UserID: 100, IsPickup: true},
		[]domain.OrderItem{{ProductID: pizzaID}}, money.MustParse("300").Neg())

	_, err := s.services.OrderService.Refund(s.T().Context(), refunded, "не то")
	s.Require().NoError(err)

	credit, err := s.services.UserService.Credit(s.T().Context(), 100)
	s.Require().NoError(err)
	s.True(credit.Equal(money.MustParse("500").Neg()),
		"expected -500.00, got %s", credit.String())
}

func (s *UserServiceTestSuite) TestPromoteAndUpdateFlags() {
	s.store.SeedUser(domain.User{ID: 200, FirstName: "Петя"})
	s.store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true})

	admin, err := s.services.UserService.Promote(s.T().Context(), 200)
	s.Require().NoError(err)
	s.False(admin.EditProducts)
	s.False(admin.IsOwner)

	s.Require().NoError(s.services.UserService.UpdateAdminFlags(s.T().Context(), repoargs.AdminFlags{
		UserID:        200,
		EditProducts:  true,
		DisplayOnHelp: true,
	}))

	updated, err := s.services.UserService.FindAdmin(s.T().Context(), 200)
	s.Require().NoError(err)
	s.True(updated.EditProducts)
	s.True(updated.DisplayOnHelp)
	s.False(updated.ReceiveOrders)

	help, err := s.services.UserService.HelpAdmins(s.T().Context())
	s.Require().NoError(err)
	s.Require().Len(help, 1)
	s.Equal(int64(200), help[0].UserID)
}

// В поток заказов попадают только менеджеры с включенным живым режимом
// и правом приема заказов одновременно.
func (s *UserServiceTestSuite) TestLiveAdminsRequireReceiveOrders() {
	s.store.SeedAdmin(domain.Admin{UserID: 1, ReceiveOrders: true, LiveMode: true})
	s.store.SeedAdmin(domain.Admin{UserID: 2, ReceiveOrders: false, LiveMode: true})
	s.store.SeedAdmin(domain.Admin{UserID: 3, ReceiveOrders: true, LiveMode: false})

	live, err := s.services.UserService.LiveAdmins(s.T().Context())
	s.Require().NoError(err)
	s.Require().Len(live, 1)
	s.Equal(int64(1), live[0].UserID)
}
