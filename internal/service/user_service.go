package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/internal/telegram"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type UserService struct {
	uow       uow.UOW
	userRepo  domain.UserRepository
	adminRepo domain.AdminRepository
	transRepo domain.TransactionRepository
}

func NewUserService(u uow.UOW) (*UserService, error) {
	userRepo, err := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err
	}
	adminRepo, err := uow.GetRepositoryAs[domain.AdminRepository](u, uow.RepositoryName(repoargs.AdminRepoName))
	if err != nil {
		return nil, err
	}
	transRepo, err := uow.GetRepositoryAs[domain.TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if err != nil {
		return nil, err
	}
	return &UserService{
		uow:       u,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		transRepo: transRepo,
	}, nil
}

// RegisterOrFetch находит пользователя по событию чат-платформы или заводит нового.
// Самый первый пользователь магазина атомарно становится владельцем. Живой режим
// админа сбрасывается: в поток заказов нужно входить заново каждую сессию.
func (s *UserService) RegisterOrFetch(ctx context.Context, upd *telegram.Update) (*domain.User, *domain.Admin, error) {
	user, findErr := s.userRepo.Find(ctx, upd.UserID)
	if findErr != nil {
		if !errors.Is(findErr, domain.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("fetching user: %w", findErr)
		}
		user, findErr = s.userRepo.Create(ctx, repoargs.CreateUser{
			ID:        upd.UserID,
			FirstName: upd.FirstName,
			LastName:  upd.LastName,
			Username:  upd.Username,
			Language:  upd.Language,
		})
		if findErr != nil {
			return nil, nil, fmt.Errorf("registering user: %w", findErr)
		}
	}

	if _, ownerErr := s.adminRepo.CreateOwnerIfFirst(ctx, user.ID); ownerErr != nil {
		return nil, nil, fmt.Errorf("bootstrapping owner: %w", ownerErr)
	}

	admin, adminErr := s.adminRepo.Find(ctx, user.ID)
	if adminErr != nil {
		if errors.Is(adminErr, domain.ErrRecordNotFound) {
			return user, nil, nil
		}
		return nil, nil, fmt.Errorf("fetching admin record: %w", adminErr)
	}
	if admin.LiveMode {
		if err := s.adminRepo.SetLiveMode(ctx, admin.UserID, false); err != nil {
			return nil, nil, fmt.Errorf("resetting live mode: %w", err)
		}
		admin.LiveMode = false
	}
	return user, admin, nil
}

func (s *UserService) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	if err := s.userRepo.UpdateLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("updating user language: %w", err)
	}
	return nil
}

// List возвращает всех известных боту пользователей (экран выбора нового менеджера).
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}

func (s *UserService) Find(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.Find(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

// Credit возвращает кошелек пользователя: сумму его невозвращенных транзакций.
func (s *UserService) Credit(ctx context.Context, userID int64) (money.Money, error) {
	credit, err := s.transRepo.SumByUser(ctx, userID)
	if err != nil {
		return money.Money{}, err //nolint:wrapcheck
	}
	return credit, nil
}

// Promote заводит запись админа для userID. Новый менеджер получает права
// выключенными, их включает владелец на экране редактирования.
func (s *UserService) Promote(ctx context.Context, userID int64) (*domain.Admin, error) {
	admin, err := s.adminRepo.Create(ctx, repoargs.AdminFlags{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("promoting user %d: %w", userID, err)
	}
	return admin, nil
}

func (s *UserService) FindAdmin(ctx context.Context, userID int64) (*domain.Admin, error) {
	admin, err := s.adminRepo.Find(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return admin, nil
}

func (s *UserService) UpdateAdminFlags(ctx context.Context, args repoargs.AdminFlags) error {
	if err := s.adminRepo.UpdateFlags(ctx, args); err != nil {
		return fmt.Errorf("updating admin flags: %w", err)
	}
	return nil
}

func (s *UserService) SetLiveMode(ctx context.Context, userID int64, live bool) error {
	if err := s.adminRepo.SetLiveMode(ctx, userID, live); err != nil {
		return fmt.Errorf("switching live mode: %w", err)
	}
	return nil
}

// LiveAdmins возвращает админов, слушающих поток заказов прямо сейчас.
func (s *UserService) LiveAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.adminRepo.ListLive(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return admins, nil
}

// HelpAdmins возвращает админов, которых показываем покупателям на экране помощи.
func (s *UserService) HelpAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.adminRepo.ListDisplayOnHelp(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return admins, nil
}
