package services_test

import (
	"context"
	"sync"

	"restaurant-service/auth"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- In-memory menu item repository ---

type memMenuRepo struct {
	items map[uuid.UUID]*models.MenuItem
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{items: make(map[uuid.UUID]*models.MenuItem)}
}

func (m *memMenuRepo) FindAll(_ context.Context, filter models.MenuItemFilter) ([]models.MenuItem, error) {
	var result []models.MenuItem
	for _, item := range m.items {
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Featured != nil && item.Featured != *filter.Featured {
			continue
		}
		result = append(result, *item)
	}
	return result, nil
}

func (m *memMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memMenuRepo) Create(_ context.Context, item *models.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *memMenuRepo) Update(_ context.Context, item *models.MenuItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *memMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// --- In-memory category repository ---

type memCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (m *memCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	var result []models.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *memCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.categories[category.ID] = category
	return nil
}

// --- In-memory cart repository ---

type cartKey struct {
	user uuid.UUID
	item uuid.UUID
}

type memCartRepo struct {
	rows map[cartKey]*models.CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{rows: make(map[cartKey]*models.CartItem)}
}

func (m *memCartRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var result []models.CartItem
	for k, row := range m.rows {
		if k.user == userID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *memCartRepo) FindByUserAndMenuItem(_ context.Context, userID, menuItemID uuid.UUID) (*models.CartItem, error) {
	row, ok := m.rows[cartKey{userID, menuItemID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memCartRepo) Create(_ context.Context, item *models.CartItem) error {
	key := cartKey{item.UserID, item.MenuItemID}
	if existing, ok := m.rows[key]; ok {
		existing.Quantity += item.Quantity
		existing.Price = existing.UnitPrice * float64(existing.Quantity)
		*item = *existing
		return nil
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	m.rows[key] = &copied
	return nil
}

func (m *memCartRepo) Update(_ context.Context, item *models.CartItem) error {
	copied := *item
	m.rows[cartKey{item.UserID, item.MenuItemID}] = &copied
	return nil
}

func (m *memCartRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for k := range m.rows {
		if k.user == userID {
			delete(m.rows, k)
		}
	}
	return nil
}

// --- In-memory order repository ---

type memOrderRepo struct {
	carts  *memCartRepo
	orders map[uuid.UUID]*models.Order
}

func newMemOrderRepo(carts *memCartRepo) *memOrderRepo {
	return &memOrderRepo{carts: carts, orders: make(map[uuid.UUID]*models.Order)}
}

func (m *memOrderRepo) CreateFromCart(ctx context.Context, order *models.Order) error {
	items, _ := m.carts.FindByUser(ctx, order.UserID)
	if len(items) == 0 {
		return repository.ErrEmptyCart
	}

	order.ID = uuid.New()
	total := 0.0
	for _, item := range items {
		total += item.Price
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Price:      item.Price,
		})
	}
	order.Total = total

	copied := *order
	m.orders[order.ID] = &copied
	return m.carts.DeleteByUser(ctx, order.UserID)
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *memOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *memOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := m.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.orders, id)
	return nil
}

// --- In-memory user repository ---

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *memUserRepo) addUser(username string, groups ...string) *models.User {
	user := &models.User{ID: uuid.New(), Username: username}
	for _, g := range groups {
		user.Groups = append(user.Groups, models.Group{ID: uuid.New(), Name: g})
	}
	m.users[user.ID] = user
	return user
}

func (m *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) FindByGroup(_ context.Context, group string) ([]models.User, error) {
	var result []models.User
	for _, u := range m.users {
		if u.InGroup(group) {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *memUserRepo) AddToGroup(_ context.Context, userID uuid.UUID, group string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if !u.InGroup(group) {
		u.Groups = append(u.Groups, models.Group{ID: uuid.New(), Name: group})
	}
	return nil
}

func (m *memUserRepo) RemoveFromGroup(_ context.Context, userID uuid.UUID, group string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	kept := u.Groups[:0]
	for _, g := range u.Groups {
		if g.Name != group {
			kept = append(kept, g)
		}
	}
	u.Groups = kept
	return nil
}

// --- Commit lock fake ---

type memCommitLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func newMemCommitLock() *memCommitLock {
	return &memCommitLock{held: make(map[uuid.UUID]bool)}
}

func (l *memCommitLock) Acquire(_ context.Context, userID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		return false, nil
	}
	l.held[userID] = true
	return true, nil
}

func (l *memCommitLock) Release(_ context.Context, userID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, userID)
	return nil
}

// --- Kafka producer fake ---

type fakeProducer struct {
	events []models.OrderCreatedEvent
}

func (p *fakeProducer) SendOrderCreated(_ context.Context, event models.OrderCreatedEvent) error {
	p.events = append(p.events, event)
	return nil
}

// --- Identity helpers ---

func customerIdentity() *auth.Identity {
	return &auth.Identity{UserID: uuid.New(), Username: "customer", Role: auth.RoleCustomer}
}

func managerIdentity() *auth.Identity {
	return &auth.Identity{UserID: uuid.New(), Username: "manager", Role: auth.RoleManager}
}

func crewIdentity() *auth.Identity {
	return &auth.Identity{UserID: uuid.New(), Username: "crew", Role: auth.RoleDeliveryCrew}
}
