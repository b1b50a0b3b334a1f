package pgrepo

import (
	"fmt"

	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

// RegisterAll регистрирует фабрики всех репозиториев в UnitOfWork.
func RegisterAll(u uow.UOW) error {
	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName:        func(db uow.DBTX) uow.Repository { return NewUserRepository(db) },
		repoargs.AdminRepoName:       func(db uow.DBTX) uow.Repository { return NewAdminRepository(db) },
		repoargs.CategoryRepoName:    func(db uow.DBTX) uow.Repository { return NewCategoryRepository(db) },
		repoargs.ProductRepoName:     func(db uow.DBTX) uow.Repository { return NewProductRepository(db) },
		repoargs.SizeRepoName:        func(db uow.DBTX) uow.Repository { return NewSizeRepository(db) },
		repoargs.OrderRepoName:       func(db uow.DBTX) uow.Repository { return NewOrderRepository(db) },
		repoargs.OrderItemRepoName:   func(db uow.DBTX) uow.Repository { return NewOrderItemRepository(db) },
		repoargs.TransactionRepoName: func(db uow.DBTX) uow.Repository { return NewTransactionRepository(db) },
		repoargs.AddressRepoName:     func(db uow.DBTX) uow.Repository { return NewAddressRepository(db) },
	}
	for name, factory := range factories {
		if err := u.Register(uow.RepositoryName(name), factory); err != nil {
			return fmt.Errorf("registering %s repository: %w", name, err)
		}
	}
	return nil
}
