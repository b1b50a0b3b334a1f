package service

import (
	"fmt"

	"github.com/avolkhin/shopbot/pkg/uow"
)

type AppServices struct {
	UserService    *UserService
	CatalogService *CatalogService
	OrderService   *OrderService
}

func Factory(unitOfWork uow.UOW) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	catalogService, catalogServiceErr := NewCatalogService(unitOfWork)
	if catalogServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	return &AppServices{
		UserService:    userService,
		CatalogService: catalogService,
		OrderService:   orderService,
	}, nil
}
