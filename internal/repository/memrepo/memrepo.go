// Package memrepo — in-memory реализация доменных репозиториев и Unit of Work
// для тестов сценариев. Семантика повторяет pgrepo: отсутствие записи дает
// domain.ErrRecordNotFound, повторная обработка заказа не проходит, мягкое
// удаление скрывает записи из списков.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/pkg/uow"
)

// Store — потокобезопасное хранилище всех сущностей магазина.
type Store struct {
	mu sync.Mutex

	users        map[int64]*domain.User
	admins       map[int64]*domain.Admin
	categories   map[int64]*domain.Category
	products     map[int64]*domain.Product
	sizes        map[int64]*domain.Size
	addresses    map[int64]*domain.Address
	orders       map[int64]*domain.Order
	orderItems   []domain.OrderItem
	transactions map[int64]*domain.Transaction

	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*domain.User),
		admins:       make(map[int64]*domain.Admin),
		categories:   make(map[int64]*domain.Category),
		products:     make(map[int64]*domain.Product),
		sizes:        make(map[int64]*domain.Size),
		addresses:    make(map[int64]*domain.Address),
		orders:       make(map[int64]*domain.Order),
		transactions: make(map[int64]*domain.Transaction),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// --- сиды для тестов ---

func (s *Store) SeedUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = &u
}

func (s *Store) SeedAdmin(a domain.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[a.UserID] = &a
}

func (s *Store) SeedCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.categories[c.ID] = &c
}

func (s *Store) SeedProduct(p domain.Product, sizes ...domain.Size) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.products[p.ID] = &p
	for _, size := range sizes {
		if size.ID == 0 {
			size.ID = s.id()
		}
		size.ProductID = p.ID
		sz := size
		s.sizes[sz.ID] = &sz
	}
	return p.ID
}

// SeedOrder добавляет заказ вместе с позициями и транзакцией списания.
func (s *Store) SeedOrder(o domain.Order, items []domain.OrderItem, value money.Money) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		o.ID = s.id()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.ID] = &o
	for _, item := range items {
		item.ID = s.id()
		item.OrderID = o.ID
		s.orderItems = append(s.orderItems, item)
	}
	orderID := o.ID
	transID := s.id()
	s.transactions[transID] = &domain.Transaction{
		ID:      transID,
		UserID:  o.UserID,
		OrderID: &orderID,
		Value:   value,
	}
	return o.ID
}

// --- снапшоты для проверок ---

func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) OrderItems() []domain.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.OrderItem(nil), s.orderItems...)
}

func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Sizes() []domain.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Size, 0, len(s.sizes))
	for _, size := range s.sizes {
		if !size.Deleted {
			out = append(out, *size)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Admins() []domain.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// --- пользователи ---

type userRepo struct{ s *Store }

func (r userRepo) Find(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r userRepo) Create(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[args.ID]; ok {
		return nil, domain.ErrDuplicateKey
	}
	u := &domain.User{
		ID:        args.ID,
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Username:  args.Username,
		Language:  args.Language,
		CreatedAt: time.Now(),
	}
	r.s.users[args.ID] = u
	copied := *u
	return &copied, nil
}

func (r userRepo) UpdateLanguage(_ context.Context, id int64, language string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	u.Language = language
	return nil
}

func (r userRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- админы ---

type adminRepo struct{ s *Store }

func (r adminRepo) Find(_ context.Context, userID int64) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.admins[userID]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r adminRepo) CreateOwnerIfFirst(_ context.Context, userID int64) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.admins) > 0 {
		return nil, nil
	}
	a := &domain.Admin{
		UserID:        userID,
		EditProducts:  true,
		ReceiveOrders: true,
		DisplayOnHelp: true,
		IsOwner:       true,
	}
	r.s.admins[userID] = a
	copied := *a
	return &copied, nil
}

func (r adminRepo) Create(_ context.Context, args repoargs.AdminFlags) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[args.UserID]; ok {
		return nil, domain.ErrDuplicateKey
	}
	a := &domain.Admin{
		UserID:        args.UserID,
		EditProducts:  args.EditProducts,
		ReceiveOrders: args.ReceiveOrders,
		DisplayOnHelp: args.DisplayOnHelp,
		IsOwner:       args.IsOwner,
		LiveMode:      args.LiveMode,
	}
	r.s.admins[args.UserID] = a
	copied := *a
	return &copied, nil
}

func (r adminRepo) UpdateFlags(_ context.Context, args repoargs.AdminFlags) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[args.UserID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	a.EditProducts = args.EditProducts
	a.ReceiveOrders = args.ReceiveOrders
	a.DisplayOnHelp = args.DisplayOnHelp
	a.IsOwner = args.IsOwner
	a.LiveMode = args.LiveMode
	return nil
}

func (r adminRepo) SetLiveMode(_ context.Context, userID int64, live bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[userID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	a.LiveMode = live
	return nil
}

func (r adminRepo) ListLive(_ context.Context) ([]domain.Admin, error) {
	return r.list(func(a *domain.Admin) bool { return a.LiveMode && a.ReceiveOrders })
}

func (r adminRepo) ListDisplayOnHelp(_ context.Context) ([]domain.Admin, error) {
	return r.list(func(a *domain.Admin) bool { return a.DisplayOnHelp })
}

func (r adminRepo) list(keep func(*domain.Admin) bool) ([]domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Admin
	for _, a := range r.s.admins {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// --- категории ---

type categoryRepo struct{ s *Store }

func (r categoryRepo) ListByParent(_ context.Context, parentID *int64) ([]domain.Category, error) {
	return r.list(func(c *domain.Category) bool {
		return !c.Deleted && c.Active && sameID(c.ParentID, parentID)
	})
}

func (r categoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	return r.list(func(c *domain.Category) bool { return !c.Deleted })
}

func (r categoryRepo) list(keep func(*domain.Category) bool) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Category
	for _, c := range r.s.categories {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categoryRepo) Find(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok && !c.Deleted {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r categoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if !c.Deleted && c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r categoryRepo) Save(_ context.Context, args repoargs.SaveCategory) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if args.ID == 0 {
		c := &domain.Category{ID: r.s.id(), Name: args.Name, ParentID: args.ParentID, Active: args.Active}
		r.s.categories[c.ID] = c
		copied := *c
		return &copied, nil
	}
	c, ok := r.s.categories[args.ID]
	if !ok || c.Deleted {
		return nil, domain.ErrRecordNotFound
	}
	c.Name = args.Name
	c.ParentID = args.ParentID
	c.Active = args.Active
	copied := *c
	return &copied, nil
}

func (r categoryRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.Deleted {
		return domain.ErrRecordNotFound
	}
	c.Deleted = true
	return nil
}

// --- товары ---

type productRepo struct{ s *Store }

func (r productRepo) ListByCategory(_ context.Context, categoryID *int64) ([]domain.Product, error) {
	return r.list(func(p *domain.Product) bool {
		return !p.Deleted && sameID(p.CategoryID, categoryID)
	})
}

func (r productRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	return r.list(func(p *domain.Product) bool { return !p.Deleted })
}

func (r productRepo) list(keep func(*domain.Product) bool) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Product
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r productRepo) Find(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok && !p.Deleted {
		copied := *p
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r productRepo) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if !p.Deleted && p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r productRepo) Save(_ context.Context, args repoargs.SaveProduct) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if args.ID == 0 {
		p := &domain.Product{
			ID:          r.s.id(),
			Name:        args.Name,
			Description: args.Description,
			Price:       args.Price,
			CategoryID:  args.CategoryID,
		}
		r.s.products[p.ID] = p
		copied := *p
		return &copied, nil
	}
	p, ok := r.s.products[args.ID]
	if !ok || p.Deleted {
		return nil, domain.ErrRecordNotFound
	}
	p.Name = args.Name
	p.Description = args.Description
	p.Price = args.Price
	p.CategoryID = args.CategoryID
	copied := *p
	return &copied, nil
}

func (r productRepo) SetImage(_ context.Context, id int64, image []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.Deleted {
		return domain.ErrRecordNotFound
	}
	p.Image = image
	return nil
}

func (r productRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.Deleted {
		return domain.ErrRecordNotFound
	}
	p.Deleted = true
	return nil
}

// --- размеры ---

type sizeRepo struct{ s *Store }

func (r sizeRepo) ListByProduct(_ context.Context, productID int64) ([]domain.Size, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Size
	for _, size := range r.s.sizes {
		if !size.Deleted && size.ProductID == productID {
			out = append(out, *size)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r sizeRepo) Find(_ context.Context, id int64) (*domain.Size, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if size, ok := r.s.sizes[id]; ok && !size.Deleted {
		copied := *size
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r sizeRepo) Replace(_ context.Context, productID int64, specs []repoargs.SizeSpec) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, size := range r.s.sizes {
		if size.ProductID == productID {
			size.Deleted = true
		}
	}
	for _, spec := range specs {
		size := &domain.Size{ID: r.s.id(), ProductID: productID, Name: spec.Name, Price: spec.Price}
		r.s.sizes[size.ID] = size
	}
	return nil
}

// --- адреса ---

type addressRepo struct{ s *Store }

func (r addressRepo) Create(_ context.Context, args repoargs.CreateAddress) (*domain.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := &domain.Address{
		ID:        r.s.id(),
		UserID:    args.UserID,
		Text:      args.Text,
		Latitude:  args.Latitude,
		Longitude: args.Longitude,
	}
	r.s.addresses[a.ID] = a
	copied := *a
	return &copied, nil
}

func (r addressRepo) Find(_ context.Context, id int64) (*domain.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.addresses[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

// --- заказы ---

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o := &domain.Order{
		ID:        r.s.id(),
		UserID:    args.UserID,
		CreatedAt: args.CreatedAt,
		AddressID: args.AddressID,
		IsPickup:  args.IsPickup,
		Phone:     args.Phone,
		Notes:     args.Notes,
	}
	r.s.orders[o.ID] = o
	copied := *o
	return &copied, nil
}

func (r orderRepo) Find(_ context.Context, id int64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r orderRepo) LatestByUser(_ context.Context, userID int64, limit uint) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if uint(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r orderRepo) ListPending(_ context.Context) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Order
	for _, o := range r.s.orders {
		if !o.Cleared() {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r orderRepo) MarkDelivered(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Cleared() {
		return domain.ErrRecordNotFound
	}
	o.DeliveryDate = &at
	return nil
}

func (r orderRepo) MarkRefunded(_ context.Context, id int64, at time.Time, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Cleared() {
		return domain.ErrRecordNotFound
	}
	o.RefundDate = &at
	o.RefundReason = reason
	return nil
}

// --- позиции заказов ---

type orderItemRepo struct{ s *Store }

func (r orderItemRepo) BatchCreate(_ context.Context, items []repoargs.CreateOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range items {
		r.s.orderItems = append(r.s.orderItems, domain.OrderItem{
			ID:        r.s.id(),
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
		})
	}
	return nil
}

func (r orderItemRepo) ListByOrder(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.OrderItem
	for _, item := range r.s.orderItems {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

// --- транзакции ---

type transactionRepo struct{ s *Store }

func (r transactionRepo) Create(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := &domain.Transaction{
		ID:      r.s.id(),
		UserID:  args.UserID,
		OrderID: args.OrderID,
		Value:   args.Value,
		Notes:   args.Notes,
	}
	r.s.transactions[t.ID] = t
	copied := *t
	return &copied, nil
}

func (r transactionRepo) FindByOrder(_ context.Context, orderID int64) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.transactions {
		if t.OrderID != nil && *t.OrderID == orderID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r transactionRepo) SetRefunded(_ context.Context, id int64, refunded bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	t.Refunded = refunded
	return nil
}

func (r transactionRepo) SumByUser(_ context.Context, userID int64) (money.Money, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum money.Money
	for _, t := range r.s.transactions {
		if t.UserID == userID && !t.Refunded {
			sum = sum.Add(t.Value)
		}
	}
	return sum, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// --- unit of work ---

// UnitOfWork отдает репозитории хранилища и выполняет Do без настоящей
// транзакции: откат не поддерживается, тестовые сценарии его не требуют.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Register(_ uow.RepositoryName, _ uow.RepositoryFactory) error {
	return nil
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx uow.TX) error) error {
	return fn(ctx, memTX{u: u})
}

func (u *UnitOfWork) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.UserRepoName:
		return userRepo{s: u.store}, nil
	case repoargs.AdminRepoName:
		return adminRepo{s: u.store}, nil
	case repoargs.CategoryRepoName:
		return categoryRepo{s: u.store}, nil
	case repoargs.ProductRepoName:
		return productRepo{s: u.store}, nil
	case repoargs.SizeRepoName:
		return sizeRepo{s: u.store}, nil
	case repoargs.OrderRepoName:
		return orderRepo{s: u.store}, nil
	case repoargs.OrderItemRepoName:
		return orderItemRepo{s: u.store}, nil
	case repoargs.TransactionRepoName:
		return transactionRepo{s: u.store}, nil
	case repoargs.AddressRepoName:
		return addressRepo{s: u.store}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}

type memTX struct {
	u *UnitOfWork
}

func (t memTX) Get(name uow.RepositoryName) (uow.Repository, error) {
	return t.u.GetRepository(name)
}
