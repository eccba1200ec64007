package models

import (
	"time"
)

// OrderStatus is a free-form status token. "pending" and "new" are the values
// the shop sets itself; admins may supply others (e.g. "shipped", "cancelled").
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusNew     OrderStatus = "new"
)

// RequestStatus tracks a custom order request. Every request starts as "new".
type RequestStatus string

const RequestStatusNew RequestStatus = "new"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash, hashing happens in handlers/cli
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  *int      `json:"category_id"` // nil when uncategorized
	Images      []string  `json:"images"`
	Features    []string  `json:"features"`
	Fabric      string    `json:"fabric"`       // e.g. "Banarasi silk"
	WorkDetails string    `json:"work_details"` // e.g. "zari border, hand embroidery"
	InStock     bool      `json:"in_stock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItemWithProduct pairs a cart row with the product it references.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"user_id"`
	Status          OrderStatus `json:"status"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem records the unit price at purchase time, so later product price
// changes never rewrite order history.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderItemWithProduct struct {
	OrderItem
	Product Product `json:"product"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"items"`
}

type CustomRequest struct {
	ID           int           `json:"id"`
	UserID       *int          `json:"user_id"` // nil for anonymous requests
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Requirements string        `json:"requirements"`
	Budget       string        `json:"budget"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

type Review struct {
	ID           int       `json:"id"`
	ProductID    int       `json:"product_id"`
	UserID       int       `json:"user_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewWithUser adds the reviewer's username for display.
type ReviewWithUser struct {
	Review
	Username string `json:"username"`
}
