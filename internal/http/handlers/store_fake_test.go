package handlers

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

// fakeStore is an in-memory storage.Store used by handler tests. It honors
// the same contracts as the Postgres implementation: field-specific
// duplicate errors, upsert cart semantics, transactional-style checkout.
type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]models.User
	products   map[int64]models.Product
	categories map[int64]models.Category
	cart       map[int64]map[int64]models.CartLine
	orders     []models.Order
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[int64]models.User{},
		products:   map[int64]models.Product{},
		categories: map[int64]models.Category{},
		cart:       map[int64]map[int64]models.CartLine{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return models.User{}, storage.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return models.User{}, storage.ErrDuplicateEmail
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) UserByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) UserByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (f *fakeStore) UpdateUser(_ context.Context, id int64, patch storage.UserPatch) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	for otherID, other := range f.users {
		if otherID == id {
			continue
		}
		if patch.Username != nil && other.Username == *patch.Username {
			return models.User{}, storage.ErrDuplicateUsername
		}
		if patch.Email != nil && other.Email == *patch.Email {
			return models.User{}, storage.ErrDuplicateEmail
		}
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	user.UpdatedAt = time.Now()
	f.users[id] = user
	return user, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (f *fakeStore) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = f.id()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id int64) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return models.Product{}, storage.ErrNotFound
	}
	return product, nil
}

func (f *fakeStore) ListProducts(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	products := make([]models.Product, 0, len(f.products))
	for _, product := range f.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id int64, patch storage.ProductPatch) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return models.Product{}, storage.ErrNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		product.CategoryID = patch.CategoryID
	}
	if patch.ImageURL != nil {
		product.ImageURL = patch.ImageURL
	}
	product.UpdatedAt = time.Now()
	f.products[id] = product
	return product, nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.products, id)
	for _, lines := range f.cart {
		delete(lines, id)
	}
	return nil
}

func (f *fakeStore) CreateCategory(_ context.Context, name string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Name == name {
			return models.Category{}, storage.ErrDuplicateCategory
		}
	}
	category := models.Category{ID: f.id(), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeStore) ListCategories(_ context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	categories := make([]models.Category, 0, len(f.categories))
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeStore) AddCartItem(_ context.Context, userID, productID int64, quantity int32) (models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[productID]; !ok {
		return models.CartLine{}, storage.ErrNotFound
	}
	lines, ok := f.cart[userID]
	if !ok {
		lines = map[int64]models.CartLine{}
		f.cart[userID] = lines
	}
	line, exists := lines[productID]
	if exists {
		line.Quantity += quantity
		line.UpdatedAt = time.Now()
	} else {
		line = models.CartLine{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	lines[productID] = line
	return line, nil
}

func (f *fakeStore) CartItems(_ context.Context, userID int64) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []models.CartItem{}
	for productID, line := range f.cart[userID] {
		product := f.products[productID]
		items = append(items, models.CartItem{
			CartLine:           line,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			ProductPrice:       product.Price,
			ProductImageURL:    product.ImageURL,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (f *fakeStore) SetCartQuantity(_ context.Context, userID, productID int64, quantity int32) (models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	line, ok := f.cart[userID][productID]
	if !ok {
		return models.CartLine{}, storage.ErrNotFound
	}
	line.Quantity = quantity
	line.UpdatedAt = time.Now()
	f.cart[userID][productID] = line
	return line, nil
}

func (f *fakeStore) RemoveCartItem(_ context.Context, userID, productID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cart[userID][productID]; !ok {
		return false, nil
	}
	delete(f.cart[userID], productID)
	return true, nil
}

func (f *fakeStore) Checkout(_ context.Context, userID int64, clientTotal *float64, status string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := f.cart[userID]
	if len(lines) == 0 {
		return models.Order{}, storage.ErrEmptyCart
	}

	var total float64
	for productID, line := range lines {
		total += f.products[productID].Price * float64(line.Quantity)
	}
	if clientTotal != nil && math.Abs(*clientTotal-total) > 0.005 {
		return models.Order{}, storage.ErrTotalMismatch
	}
	if status == "" {
		status = models.OrderStatusPending
	}

	order := models.Order{
		ID:          f.id(),
		UserID:      userID,
		TotalAmount: total,
		Status:      status,
		// Strictly increasing so newest-first ordering is deterministic.
		OrderDate: time.Now().Add(time.Duration(f.nextID) * time.Millisecond),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.orders = append(f.orders, order)
	f.cart[userID] = map[int64]models.CartLine{}
	return order, nil
}

func (f *fakeStore) OrdersForUser(_ context.Context, userID int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := []models.Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	return orders, nil
}

func (f *fakeStore) AllOrders(_ context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := make([]models.Order, len(f.orders))
	copy(orders, f.orders)
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	return orders, nil
}
