package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type CatalogService struct {
	uow          uow.UOW
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	sizeRepo     domain.SizeRepository
}

func NewCatalogService(u uow.UOW) (*CatalogService, error) {
	categoryRepo, err := uow.GetRepositoryAs[domain.CategoryRepository](u, uow.RepositoryName(repoargs.CategoryRepoName))
	if err != nil {
		return nil, err
	}
	productRepo, err := uow.GetRepositoryAs[domain.ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if err != nil {
		return nil, err
	}
	sizeRepo, err := uow.GetRepositoryAs[domain.SizeRepository](u, uow.RepositoryName(repoargs.SizeRepoName))
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		uow:          u,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
	}, nil
}

// Categories возвращает активные категории уровня parentID (nil для корня дерева).
func (s *CatalogService) Categories(ctx context.Context, parentID *int64) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return categories, nil
}

func (s *CatalogService) AllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return categories, nil
}

func (s *CatalogService) FindCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categoryRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return category, nil
}

func (s *CatalogService) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return category, nil
}

// SaveCategory создает или обновляет категорию. Имя должно быть уникально среди
// живых категорий, иначе возвращается domain.ErrDuplicateKey.
func (s *CatalogService) SaveCategory(ctx context.Context, args repoargs.SaveCategory) (*domain.Category, error) {
	if err := s.checkCategoryName(ctx, args.ID, args.Name); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.Save(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}

// Products возвращает товары категории categoryID (nil для товаров без категории).
func (s *CatalogService) Products(ctx context.Context, categoryID *int64) ([]domain.Product, error) {
	products, err := s.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return products, nil
}

func (s *CatalogService) AllProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return products, nil
}

func (s *CatalogService) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return product, nil
}

func (s *CatalogService) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	product, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return product, nil
}

// SaveProduct создает или обновляет товар вместе с его набором размеров в одной
// транзакции. Совпадение имени с другим живым товаром возвращает
// domain.ErrDuplicateKey без каких-либо изменений в каталоге.
func (s *CatalogService) SaveProduct(
	ctx context.Context,
	args repoargs.SaveProduct,
	sizes []repoargs.SizeSpec,
	keepSizes bool,
) (*domain.Product, error) {
	var product *domain.Product
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, repoErr := uow.GetAs[domain.ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		existing, findErr := productRepo.FindByName(c, args.Name)
		if findErr != nil && !errors.Is(findErr, domain.ErrRecordNotFound) {
			return findErr //nolint:wrapcheck
		}
		if existing != nil && existing.ID != args.ID {
			return domain.ErrDuplicateKey
		}

		saved, saveErr := productRepo.Save(c, args)
		if saveErr != nil {
			return saveErr //nolint:wrapcheck
		}

		if !keepSizes {
			sizeRepo, sizeRepoErr := uow.GetAs[domain.SizeRepository](tx, uow.RepositoryName(repoargs.SizeRepoName))
			if sizeRepoErr != nil {
				return sizeRepoErr //nolint:wrapcheck
			}
			if replaceErr := sizeRepo.Replace(c, saved.ID, sizes); replaceErr != nil {
				return replaceErr //nolint:wrapcheck
			}
		}

		product = saved
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrDuplicateKey) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, fmt.Errorf("saving product: %w", txErr)
	}
	return product, nil
}

func (s *CatalogService) SetProductImage(ctx context.Context, id int64, image []byte) error {
	if err := s.productRepo.SetImage(ctx, id, image); err != nil {
		return fmt.Errorf("saving product image: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

func (s *CatalogService) Sizes(ctx context.Context, productID int64) ([]domain.Size, error) {
	sizes, err := s.sizeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return sizes, nil
}

func (s *CatalogService) FindSize(ctx context.Context, id int64) (*domain.Size, error) {
	size, err := s.sizeRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return size, nil
}

func (s *CatalogService) checkCategoryName(ctx context.Context, id int64, name string) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("checking category name: %w", err)
	}
	if existing.ID != id {
		return domain.ErrDuplicateKey
	}
	return nil
}
