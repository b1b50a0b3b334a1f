package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type OrderService struct {
	uow           uow.UOW
	orderRepo     domain.OrderRepository
	orderItemRepo domain.OrderItemRepository
	transRepo     domain.TransactionRepository
	userRepo      domain.UserRepository
	productRepo   domain.ProductRepository
	sizeRepo      domain.SizeRepository
	addressRepo   domain.AddressRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	s := &OrderService{uow: u}
	var err error
	if s.orderRepo, err = uow.GetRepositoryAs[domain.OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName)); err != nil {
		return nil, err
	}
	if s.orderItemRepo, err = uow.GetRepositoryAs[domain.OrderItemRepository](u, uow.RepositoryName(repoargs.OrderItemRepoName)); err != nil {
		return nil, err
	}
	if s.transRepo, err = uow.GetRepositoryAs[domain.TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName)); err != nil {
		return nil, err
	}
	if s.userRepo, err = uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName)); err != nil {
		return nil, err
	}
	if s.productRepo, err = uow.GetRepositoryAs[domain.ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName)); err != nil {
		return nil, err
	}
	if s.sizeRepo, err = uow.GetRepositoryAs[domain.SizeRepository](u, uow.RepositoryName(repoargs.SizeRepoName)); err != nil {
		return nil, err
	}
	if s.addressRepo, err = uow.GetRepositoryAs[domain.AddressRepository](u, uow.RepositoryName(repoargs.AddressRepoName)); err != nil {
		return nil, err
	}
	return s, nil
}

// OrderLine — позиция размещаемого заказа: товар, выбранный размер и количество.
type OrderLine struct {
	ProductID int64
	SizeID    *int64
	Quantity  int
}

type PlaceOrderArgs struct {
	UserID int64
	// Address снимается в момент оформления. nil при самовывозе.
	Address  *repoargs.CreateAddress
	IsPickup bool
	Phone    string
	Notes    string
	Lines    []OrderLine
	Total    money.Money
}

// PlaceOrder атомарно размещает заказ: адрес, заказ, позиции и транзакция
// списания создаются в одной БД-транзакции. Частично размещенных заказов
// не бывает.
func (s *OrderService) PlaceOrder(ctx context.Context, args PlaceOrderArgs) (*domain.Order, error) {
	var order *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var addressID *int64
		if args.Address != nil {
			addressRepo, repoErr := uow.GetAs[domain.AddressRepository](tx, uow.RepositoryName(repoargs.AddressRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			address, addrErr := addressRepo.Create(c, *args.Address)
			if addrErr != nil {
				return addrErr //nolint:wrapcheck
			}
			addressID = &address.ID
		}

		orderRepo, repoErr := uow.GetAs[domain.OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		created, orderErr := orderRepo.Create(c, repoargs.CreateOrder{
			UserID:    args.UserID,
			AddressID: addressID,
			IsPickup:  args.IsPickup,
			Phone:     args.Phone,
			Notes:     args.Notes,
			CreatedAt: time.Now(),
		})
		if orderErr != nil {
			return orderErr //nolint:wrapcheck
		}

		itemRepo, repoErr := uow.GetAs[domain.OrderItemRepository](tx, uow.RepositoryName(repoargs.OrderItemRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		// количество N разворачивается в N записей позиций
		var items []repoargs.CreateOrderItem
		for _, line := range args.Lines {
			for i := 0; i < line.Quantity; i++ {
				items = append(items, repoargs.CreateOrderItem{
					OrderID:   created.ID,
					ProductID: line.ProductID,
					SizeID:    line.SizeID,
				})
			}
		}
		if itemsErr := itemRepo.BatchCreate(c, items); itemsErr != nil {
			return itemsErr //nolint:wrapcheck
		}

		transRepo, repoErr := uow.GetAs[domain.TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if _, transErr := transRepo.Create(c, repoargs.CreateTransaction{
			UserID:  args.UserID,
			OrderID: &created.ID,
			Value:   args.Total.Neg(),
			Notes:   args.Notes,
		}); transErr != nil {
			return transErr //nolint:wrapcheck
		}

		order = created
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("placing order: %w", txErr)
	}
	return order, nil
}

func (s *OrderService) Find(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// Latest возвращает последние заказы пользователя, новые сверху.
func (s *OrderService) Latest(ctx context.Context, userID int64, limit uint) ([]domain.Order, error) {
	orders, err := s.orderRepo.LatestByUser(ctx, userID, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// Pending возвращает необработанные заказы (для входа в живой режим).
func (s *OrderService) Pending(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListPending(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// Deliver помечает заказ выполненным. Повторная попытка обработать уже
// закрытый заказ возвращает domain.ErrRecordNotFound и ничего не меняет.
func (s *OrderService) Deliver(ctx context.Context, id int64) (*domain.Order, error) {
	if err := s.orderRepo.MarkDelivered(ctx, id, time.Now()); err != nil {
		return nil, err //nolint:wrapcheck
	}
	order, err := s.orderRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// Refund помечает заказ возвращенным и выставляет флаг возврата на его
// транзакции. Обе записи меняются в одной БД-транзакции и не более одного
// раза: повторный возврат дает domain.ErrRecordNotFound.
func (s *OrderService) Refund(ctx context.Context, id int64, reason string) (*domain.Order, error) {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, repoErr := uow.GetAs[domain.OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if err := orderRepo.MarkRefunded(c, id, time.Now(), reason); err != nil {
			return err //nolint:wrapcheck
		}

		transRepo, repoErr := uow.GetAs[domain.TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		trans, transErr := transRepo.FindByOrder(c, id)
		if transErr != nil {
			return transErr //nolint:wrapcheck
		}
		return transRepo.SetRefunded(c, trans.ID, true) //nolint:wrapcheck
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("refunding order %d: %w", id, txErr)
	}
	order, err := s.orderRepo.Find(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// OrderDetailLine — сгруппированная позиция заказа для отображения.
type OrderDetailLine struct {
	Product  domain.Product
	Size     *domain.Size
	Quantity int
}

// OrderDetails — заказ со всем, что нужно для его текстового представления.
type OrderDetails struct {
	Order   *domain.Order
	User    *domain.User
	Address *domain.Address
	Lines   []OrderDetailLine
	Total   money.Money
}

// Details собирает заказ для отображения: позиции группируются по товару и
// размеру, итог берется из транзакции списания.
func (s *OrderService) Details(ctx context.Context, order *domain.Order) (*OrderDetails, error) {
	details := &OrderDetails{Order: order}

	user, userErr := s.userRepo.Find(ctx, order.UserID)
	if userErr != nil {
		return nil, fmt.Errorf("loading order customer: %w", userErr)
	}
	details.User = user

	if order.AddressID != nil {
		address, addrErr := s.addressRepo.Find(ctx, *order.AddressID)
		if addrErr != nil {
			return nil, fmt.Errorf("loading order address: %w", addrErr)
		}
		details.Address = address
	}

	items, itemsErr := s.orderItemRepo.ListByOrder(ctx, order.ID)
	if itemsErr != nil {
		return nil, fmt.Errorf("loading order items: %w", itemsErr)
	}
	if err := s.groupItems(ctx, details, items); err != nil {
		return nil, err
	}

	trans, transErr := s.transRepo.FindByOrder(ctx, order.ID)
	if transErr != nil {
		return nil, fmt.Errorf("loading order transaction: %w", transErr)
	}
	details.Total = trans.Value.Neg()

	return details, nil
}

func (s *OrderService) groupItems(ctx context.Context, details *OrderDetails, items []domain.OrderItem) error {
	type lineKey struct {
		productID int64
		sizeID    int64
	}
	index := make(map[lineKey]int)
	for _, item := range items {
		key := lineKey{productID: item.ProductID}
		if item.SizeID != nil {
			key.sizeID = *item.SizeID
		}
		if i, ok := index[key]; ok {
			details.Lines[i].Quantity++
			continue
		}

		product, productErr := s.productRepo.Find(ctx, item.ProductID)
		if productErr != nil {
			return fmt.Errorf("loading order product: %w", productErr)
		}
		line := OrderDetailLine{Product: *product, Quantity: 1}
		if item.SizeID != nil {
			size, sizeErr := s.sizeRepo.Find(ctx, *item.SizeID)
			if sizeErr != nil {
				return fmt.Errorf("loading order item size: %w", sizeErr)
			}
			line.Size = size
		}
		index[key] = len(details.Lines)
		details.Lines = append(details.Lines, line)
	}
	return nil
}
