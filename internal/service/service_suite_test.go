package service

import (
	"github.com/stretchr/testify/suite"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/memrepo"
)

// servicesSuite — общая база сервисных сьютов: свежий in-memory стор
// и собранные через фабрику сервисы на каждый тест.
type servicesSuite struct {
	suite.Suite
	store    *memrepo.Store
	services *AppServices
}

func (s *servicesSuite) SetupTest() {
	s.store = memrepo.NewStore()

	services, err := Factory(memrepo.NewUnitOfWork(s.store))
	s.Require().NoError(err)
	s.services = services
}

// seedCatalog заводит пиццу с базовой ценой и одним размером.
func (s *servicesSuite) seedCatalog() (pizzaID int64, sizeID int64) {
	price := money.MustParse("500")
	pizzaID = s.store.SeedProduct(domain.Product{Name: "Пицца", Price: &price},
		domain.Size{Name: "36 см", Price: money.MustParse("650")})
	return pizzaID, s.store.Sizes()[0].ID
}
