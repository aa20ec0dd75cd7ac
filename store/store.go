package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/utils"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrInvalidID  = errors.New("invalid document id")
)

// Store is the persistence surface the handlers talk to. The Mongo
// implementation backs the server; the in-memory one backs the tests.
type Store interface {
	// Users. UserByEmail keeps the password hash; UserByID strips it.
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	SaveCart(ctx context.Context, userID primitive.ObjectID, cart []models.CartItem) error
	SaveWishlist(ctx context.Context, userID primitive.ObjectID, wishlist []primitive.ObjectID) error

	// Products.
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	ListProducts(ctx context.Context, q utils.ProductQuery) ([]models.Product, int64, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error

	// Categories.
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	CategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	CategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	// Orders. Listings are newest-first.
	CreateOrder(ctx context.Context, o *models.Order) error
	OrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
}
