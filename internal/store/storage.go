package store

import (
	"context"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

// Storage is the full persistence surface of the shop. Handlers depend on
// this interface rather than the concrete Store so tests can substitute it.
//
// Fetches return (nil, nil) when no row matches; absence is not an error.
// Creates return the persisted row including generated id and timestamp.
// Updates take a patch and return the updated row, or (nil, nil) for an
// unknown id. Deletes report whether a row was removed. Constraint
// violations (unique username/slug, foreign keys) propagate unchanged from
// SQLite; see IsUniqueViolation and IsForeignKeyViolation.
type Storage interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) (bool, error)

	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)

	ListCartItems(ctx context.Context, userID int) ([]models.CartItemWithProduct, error)
	GetCartItem(ctx context.Context, id int) (*models.CartItem, error)
	AddCartItem(ctx context.Context, item models.CartItem) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, id int, patch models.CartItemPatch) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id int) (bool, error)
	ClearCart(ctx context.Context, userID int) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	ListUserOrders(ctx context.Context, userID int) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (*models.OrderWithItems, error)
	PlaceOrder(ctx context.Context, order models.Order, items []models.OrderItem) (*models.OrderWithItems, error)
	UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error)

	ListCustomRequests(ctx context.Context) ([]models.CustomRequest, error)
	GetCustomRequest(ctx context.Context, id int) (*models.CustomRequest, error)
	CreateCustomRequest(ctx context.Context, req models.CustomRequest) (*models.CustomRequest, error)
	UpdateCustomRequestStatus(ctx context.Context, id int, status models.RequestStatus) (*models.CustomRequest, error)

	ListProductReviews(ctx context.Context, productID int) ([]models.ReviewWithUser, error)
	GetReview(ctx context.Context, id int) (*models.Review, error)
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	MarkReviewHelpful(ctx context.Context, id int) (*models.Review, error)

	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

var _ Storage = (*Store)(nil)
