package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeStore 記憶體版UnifiedDB
// ExecTx 先做snapshot，fn回傳錯誤時還原，模擬交易rollback
type fakeStore struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	state  fakeState
	failOn map[string]error
	txRuns int
}

type fakeState struct {
	nextID        uint
	users         map[uint]model.User
	addresses     map[uint]model.Address
	products      map[uint]model.Product
	cartItems     map[uint]model.CartItem
	orders        map[uint]model.Order
	orderProducts map[uint]model.OrderProduct
	orderEvents   []model.OrderEvent
}

var _ db.UnifiedDB = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: fakeState{
			users:         map[uint]model.User{},
			addresses:     map[uint]model.Address{},
			products:      map[uint]model.Product{},
			cartItems:     map[uint]model.CartItem{},
			orders:        map[uint]model.Order{},
			orderProducts: map[uint]model.OrderProduct{},
		},
		failOn: map[string]error{},
	}
}

func copyMap[V any](m map[uint]V) map[uint]V {
	res := make(map[uint]V, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}

func (s fakeState) clone() fakeState {
	return fakeState{
		nextID:        s.nextID,
		users:         copyMap(s.users),
		addresses:     copyMap(s.addresses),
		products:      copyMap(s.products),
		cartItems:     copyMap(s.cartItems),
		orders:        copyMap(s.orders),
		orderProducts: copyMap(s.orderProducts),
		orderEvents:   append([]model.OrderEvent(nil), s.orderEvents...),
	}
}

// setFail 讓指定method回傳err
func (f *fakeStore) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[method] = err
}

func (f *fakeStore) fail(method string) error {
	return f.failOn[method]
}

func (f *fakeStore) id() uint {
	f.state.nextID++
	return f.state.nextID
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(db.UnifiedDB) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	f.txRuns++
	snapshot := f.state.clone()
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.state = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

// user

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateUser"); err != nil {
		return err
	}
	for _, u := range f.state.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	f.state.users[user.ID] = *user
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetUserByID"); err != nil {
		return nil, err
	}
	u, ok := f.state.users[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeStore) GetUserWithAddresses(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.state.users[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	u.Addresses = nil
	for _, k := range sortedKeys(f.state.addresses) {
		if a := f.state.addresses[k]; a.UserID == id {
			u.Addresses = append(u.Addresses, a)
		}
	}
	return &u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, db.ErrRecordNotFound
}

func (f *fakeStore) ListUsers(ctx context.Context, offset, limit int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []model.User
	for _, k := range sortedKeys(f.state.users) {
		users = append(users, f.state.users[k])
	}
	return page(users, offset, limit), nil
}

func (f *fakeStore) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.state.users)), nil
}

func (f *fakeStore) PatchUserFields(ctx context.Context, id uint, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.state.users[id]
	if !ok {
		return db.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			u.Name = v.(string)
		case "role":
			u.Role = v.(model.Role)
		case "default_shipping_address_id":
			id := v.(uint)
			u.DefaultShippingAddressID = &id
		case "default_billing_address_id":
			id := v.(uint)
			u.DefaultBillingAddressID = &id
		}
	}
	f.state.users[id] = u
	return nil
}

func (f *fakeStore) LockUser(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("LockUser"); err != nil {
		return nil, err
	}
	u, ok := f.state.users[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &u, nil
}

// address

func (f *fakeStore) CreateAddress(ctx context.Context, address *model.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	address.ID = f.id()
	f.state.addresses[address.ID] = *address
	return nil
}

func (f *fakeStore) GetUserAddress(ctx context.Context, userID, addressID uint) (*model.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetUserAddress"); err != nil {
		return nil, err
	}
	a, ok := f.state.addresses[addressID]
	if !ok || a.UserID != userID {
		return nil, db.ErrRecordNotFound
	}
	return &a, nil
}

func (f *fakeStore) ListAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Address
	for _, k := range sortedKeys(f.state.addresses) {
		if a := f.state.addresses[k]; a.UserID == userID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (f *fakeStore) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.state.addresses[addressID]
	if !ok || a.UserID != userID {
		return db.ErrRecordNotFound
	}
	delete(f.state.addresses, addressID)
	return nil
}

func (f *fakeStore) ClearDefaultAddress(ctx context.Context, userID, addressID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ClearDefaultAddress"); err != nil {
		return err
	}
	u, ok := f.state.users[userID]
	if !ok {
		return nil
	}
	if u.DefaultShippingAddressID != nil && *u.DefaultShippingAddressID == addressID {
		u.DefaultShippingAddressID = nil
	}
	if u.DefaultBillingAddressID != nil && *u.DefaultBillingAddressID == addressID {
		u.DefaultBillingAddressID = nil
	}
	f.state.users[userID] = u
	return nil
}

// product

func (f *fakeStore) CreateProduct(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateProduct"); err != nil {
		return err
	}
	product.ID = f.id()
	f.state.products[product.ID] = *product
	return nil
}

func (f *fakeStore) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("GetProductByID"); err != nil {
		return nil, err
	}
	p, ok := f.state.products[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListProducts(ctx context.Context, offset, limit int) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []model.Product
	for _, k := range sortedKeys(f.state.products) {
		res = append(res, f.state.products[k])
	}
	return page(res, offset, limit), nil
}

func (f *fakeStore) CountProducts(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CountProducts"); err != nil {
		return 0, err
	}
	return int64(len(f.state.products)), nil
}

func (f *fakeStore) searchLocked(query string) []model.Product {
	var res []model.Product
	q := strings.ToLower(query)
	for _, k := range sortedKeys(f.state.products) {
		p := f.state.products[k]
		text := strings.ToLower(p.Name + " " + p.Description + " " + p.Tags)
		if strings.Contains(text, q) {
			res = append(res, p)
		}
	}
	return res
}

func (f *fakeStore) SearchProducts(ctx context.Context, query string, offset, limit int) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.searchLocked(query), offset, limit), nil
}

func (f *fakeStore) CountSearchProducts(ctx context.Context, query string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.searchLocked(query))), nil
}

func (f *fakeStore) PatchProductFields(ctx context.Context, id uint, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.state.products[id]
	if !ok {
		return db.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(decimal.Decimal)
		case "tags":
			p.Tags = v.(string)
		}
	}
	f.state.products[id] = p
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.products[id]; !ok {
		return db.ErrRecordNotFound
	}
	delete(f.state.products, id)
	return nil
}

// cart

func (f *fakeStore) withProduct(item model.CartItem) model.CartItem {
	item.Product = f.state.products[item.ProductID]
	return item
}

func (f *fakeStore) GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.state.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			res := f.withProduct(item)
			return &res, nil
		}
	}
	return nil, db.ErrRecordNotFound
}

func (f *fakeStore) GetCartItemByID(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.state.cartItems[itemID]
	if !ok || item.UserID != userID {
		return nil, db.ErrRecordNotFound
	}
	res := f.withProduct(item)
	return &res, nil
}

func (f *fakeStore) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpsertCartItem"); err != nil {
		return err
	}
	for id, existing := range f.state.cartItems {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			f.state.cartItems[id] = existing
			item.ID = id
			return nil
		}
	}
	item.ID = f.id()
	stored := *item
	stored.Product = model.Product{}
	f.state.cartItems[item.ID] = stored
	return nil
}

func (f *fakeStore) ListCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListCartItemsByUserID"); err != nil {
		return nil, err
	}
	var res []model.CartItem
	for _, k := range sortedKeys(f.state.cartItems) {
		if item := f.state.cartItems[k]; item.UserID == userID {
			res = append(res, f.withProduct(item))
		}
	}
	return res, nil
}

func (f *fakeStore) UpdateCartItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.state.cartItems[itemID]
	if !ok || item.UserID != userID {
		return db.ErrRecordNotFound
	}
	item.Quantity = quantity
	f.state.cartItems[itemID] = item
	return nil
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, userID, itemID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.state.cartItems[itemID]
	if !ok || item.UserID != userID {
		return db.ErrRecordNotFound
	}
	delete(f.state.cartItems, itemID)
	return nil
}

func (f *fakeStore) deleteCartWhere(match func(model.CartItem) bool) int64 {
	var n int64
	for id, item := range f.state.cartItems {
		if match(item) {
			delete(f.state.cartItems, id)
			n++
		}
	}
	return n
}

func (f *fakeStore) DeleteCartItemsByUserID(ctx context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteCartItemsByUserID"); err != nil {
		return 0, err
	}
	return f.deleteCartWhere(func(item model.CartItem) bool { return item.UserID == userID }), nil
}

func (f *fakeStore) DeleteCartItemsByProductID(ctx context.Context, productID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteCartItemsByProductID"); err != nil {
		return 0, err
	}
	return f.deleteCartWhere(func(item model.CartItem) bool { return item.ProductID == productID }), nil
}

// order

func (f *fakeStore) CreateOrder(ctx context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateOrder"); err != nil {
		return err
	}
	order.ID = f.id()
	for i := range order.Products {
		order.Products[i].ID = f.id()
		order.Products[i].OrderID = order.ID
		f.state.orderProducts[order.Products[i].ID] = order.Products[i]
	}
	stored := *order
	stored.Products = nil
	stored.Events = nil
	f.state.orders[order.ID] = stored
	return nil
}

func (f *fakeStore) CreateOrderEvent(ctx context.Context, evt *model.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateOrderEvent"); err != nil {
		return err
	}
	evt.ID = f.id()
	f.state.orderEvents = append(f.state.orderEvents, *evt)
	return nil
}

func (f *fakeStore) detailLocked(order model.Order) model.Order {
	order.Products = []model.OrderProduct{}
	for _, k := range sortedKeys(f.state.orderProducts) {
		if p := f.state.orderProducts[k]; p.OrderID == order.ID {
			order.Products = append(order.Products, p)
		}
	}
	order.Events = nil
	for _, e := range f.state.orderEvents {
		if e.OrderID == order.ID {
			order.Events = append(order.Events, e)
		}
	}
	return order
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.state.orders[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	res := f.detailLocked(order)
	return &res, nil
}

func (f *fakeStore) LockOrder(ctx context.Context, id uint) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.state.orders[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &order, nil
}

func (f *fakeStore) filterOrders(match func(model.Order) bool) []model.Order {
	keys := sortedKeys(f.state.orders)
	var res []model.Order
	for i := len(keys) - 1; i >= 0; i-- {
		if o := f.state.orders[keys[i]]; match(o) {
			res = append(res, f.detailLocked(o))
		}
	}
	return res
}

func (f *fakeStore) ListOrdersByUserID(ctx context.Context, userID uint, offset, limit int) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.filterOrders(func(o model.Order) bool { return o.UserID == userID }), offset, limit), nil
}

func (f *fakeStore) CountOrdersByUserID(ctx context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.filterOrders(func(o model.Order) bool { return o.UserID == userID }))), nil
}

func (f *fakeStore) ListOrders(ctx context.Context, status model.OrderStatus, offset, limit int) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.filterOrders(func(o model.Order) bool { return status == "" || o.Status == status }), offset, limit), nil
}

func (f *fakeStore) CountOrders(ctx context.Context, status model.OrderStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.filterOrders(func(o model.Order) bool { return status == "" || o.Status == status }))), nil
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdateOrderStatus"); err != nil {
		return err
	}
	order, ok := f.state.orders[id]
	if !ok {
		return db.ErrRecordNotFound
	}
	order.Status = status
	f.state.orders[id] = order
	for k, p := range f.state.orderProducts {
		if p.OrderID == id {
			p.Status = status
			f.state.orderProducts[k] = p
		}
	}
	return nil
}
