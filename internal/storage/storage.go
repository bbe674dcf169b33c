package storage

import (
	"context"
	"errors"

	"github.com/tanwl/storefront-be/internal/models"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail indicates the email is already in use.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateCategory indicates a category with that name exists.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrEmptyCart rejects a checkout against a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrTotalMismatch rejects a checkout whose client-supplied total
	// disagrees with the server-side recomputation.
	ErrTotalMismatch = errors.New("total amount does not match cart contents")
)

// UserPatch carries the optional fields of a partial profile update. Only
// non-nil fields are written; the password arrives already hashed.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}

// ProductPatch carries the optional fields of a partial product edit.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
	ImageURL    *string
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.ImageURL == nil
}

// UserStore captures user persistence needed by auth and profile handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ProductStore captures catalog persistence for products.
type ProductStore interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	ProductByID(ctx context.Context, id int64) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryStore captures catalog persistence for categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CartStore captures the per-user cart ledger. AddCartItem is an atomic
// upsert: an existing (user, product) line has the quantity added to it.
type CartStore interface {
	AddCartItem(ctx context.Context, userID, productID int64, quantity int32) (models.CartLine, error)
	CartItems(ctx context.Context, userID int64) ([]models.CartItem, error)
	SetCartQuantity(ctx context.Context, userID, productID int64, quantity int32) (models.CartLine, error)
	// RemoveCartItem is idempotent; the boolean reports whether a line was
	// actually deleted.
	RemoveCartItem(ctx context.Context, userID, productID int64) (bool, error)
}

// OrderStore captures the order ledger. Checkout recomputes the total from
// the persisted cart, writes the order, and clears the cart in one
// transaction; clientTotal, when non-nil, is validated against the
// recomputed value.
type OrderStore interface {
	Checkout(ctx context.Context, userID int64, clientTotal *float64, status string) (models.Order, error)
	OrdersForUser(ctx context.Context, userID int64) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
}

// Store is the full persistence surface wired into the server.
type Store interface {
	UserStore
	ProductStore
	CategoryStore
	CartStore
	OrderStore
}
