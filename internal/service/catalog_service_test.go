package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
)

type CatalogServiceTestSuite struct {
	servicesSuite
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestSaveProductRejectsDuplicateName() {
	price := money.MustParse("500")
	s.store.SeedProduct(domain.Product{Name: "Пицца", Price: &price})

	_, err := s.services.CatalogService.SaveProduct(s.T().Context(),
		repoargs.SaveProduct{Name: "Пицца", Price: &price}, nil, false)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	// каталог не изменился
	s.Len(s.store.Products(), 1)
}

func (s *CatalogServiceTestSuite) TestSaveProductReplacesSizes() {
	pizzaID, _ := s.seedCatalog()

	saved, err := s.services.CatalogService.SaveProduct(s.T().Context(), repoargs.SaveProduct{
		ID:   pizzaID,
		Name: "Пицца",
	}, []repoargs.SizeSpec{
		{Name: "32 см", Price: money.MustParse("350")},
		{Name: "40 см", Price: money.MustParse("750")},
	}, false)
	s.Require().NoError(err)

	sizes, err := s.services.CatalogService.Sizes(s.T().Context(), saved.ID)
	s.Require().NoError(err)
	s.Require().Len(sizes, 2)
	s.Equal("32 см", sizes[0].Name)
	s.Equal("40 см", sizes[1].Name)
	s.Nil(saved.Price)
}

func (s *CatalogServiceTestSuite) TestSaveProductKeepSizes() {
	pizzaID, sizeID := s.seedCatalog()
	price := money.MustParse("600")

	_, err := s.services.CatalogService.SaveProduct(s.T().Context(), repoargs.SaveProduct{
		ID:    pizzaID,
		Name:  "Пицца",
		Price: &price,
	}, nil, true)
	s.Require().NoError(err)

	sizes, err := s.services.CatalogService.Sizes(s.T().Context(), pizzaID)
	s.Require().NoError(err)
	s.Require().Len(sizes, 1)
	s.Equal(sizeID, sizes[0].ID)
}

func (s *CatalogServiceTestSuite) TestSaveCategoryRejectsDuplicateName() {
	first, err := s.services.CatalogService.SaveCategory(s.T().Context(),
		repoargs.SaveCategory{Name: "Напитки", Active: true})
	s.Require().NoError(err)

	_, err = s.services.CatalogService.SaveCategory(s.T().Context(),
		repoargs.SaveCategory{Name: "Напитки", Active: true})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	// обновление категории под ее собственным именем проходит
	updated, err := s.services.CatalogService.SaveCategory(s.T().Context(), repoargs.SaveCategory{
		ID: first.ID, Name: "Напитки", Active: false,
	})
	s.Require().NoError(err)
	s.False(updated.Active)
}

func (s *CatalogServiceTestSuite) TestSoftDeletedProductsHiddenFromLists() {
	pizzaID, _ := s.seedCatalog()

	s.Require().NoError(s.services.CatalogService.DeleteProduct(s.T().Context(), pizzaID))

	products, err := s.services.CatalogService.Products(s.T().Context(), nil)
	s.Require().NoError(err)
	s.Empty(products)

	_, err = s.services.CatalogService.FindProduct(s.T().Context(), pizzaID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CatalogServiceTestSuite) TestCategoriesListByParent() {
	s.store.SeedCategory(domain.Category{ID: 1, Name: "Еда", Active: true})
	parent := int64(1)
	s.store.SeedCategory(domain.Category{ID: 2, Name: "Пиццы", Active: true, ParentID: &parent})
	s.store.SeedCategory(domain.Category{ID: 3, Name: "Скрытая", Active: false, ParentID: &parent})

	cases := []struct {
		name     string
		parentID *int64
		want     []string
	}{
		{name: "root level", parentID: nil, want: []string{"Еда"}},
		{name: "children hide inactive", parentID: &parent, want: []string{"Пиццы"}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			categories, err := s.services.CatalogService.Categories(s.T().Context(), tc.parentID)
			s.Require().NoError(err)
			s.Require().Len(categories, len(tc.want))
			for i, want := range tc.want {
				s.Equal(want, categories[i].Name)
			}
		})
	}
}
