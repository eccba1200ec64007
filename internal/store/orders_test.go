package store

import (
	"context"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestPlaceOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "buyer")
	p1 := seedProduct(t, s, "order-one", 2000)
	p2 := seedProduct(t, s, "order-two", 3500)
	for _, p := range []*models.Product{p1, p2} {
		if _, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
	}

	order, err := s.PlaceOrder(ctx, models.Order{
		UserID:          u.ID,
		Total:           5500,
		ShippingAddress: "12 MG Road, Jaipur",
		PaymentMethod:   "cod",
	}, []models.OrderItem{
		{ProductID: p1.ID, Quantity: 1, Price: p1.Price},
		{ProductID: p2.ID, Quantity: 1, Price: p2.Price},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("placed order should have an id")
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("default status should be pending, got %q", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(order.Items))
	}

	// The cart must be emptied in the same transaction.
	items, err := s.ListCartItems(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(items))
	}
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "snapshot")
	p := seedProduct(t, s, "snapshot-saree", 4000)

	order, err := s.PlaceOrder(ctx, models.Order{UserID: u.ID, Total: 4000},
		[]models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	newPrice := 5500.0
	if _, err := s.UpdateProduct(ctx, p.ID, models.ProductPatch{Price: &newPrice}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	fetched, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if fetched.Items[0].Price != 4000 {
		t.Fatalf("line item price should stay at purchase time: got %v", fetched.Items[0].Price)
	}
	if fetched.Items[0].Product.Price != newPrice {
		t.Fatalf("joined product should show current price: got %v", fetched.Items[0].Product.Price)
	}
}

func TestPlaceOrderRollsBackOnBadItem(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "rollback")
	p := seedProduct(t, s, "rollback-saree", 3000)
	if _, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}

	_, err := s.PlaceOrder(ctx, models.Order{UserID: u.ID, Total: 3000},
		[]models.OrderItem{
			{ProductID: p.ID, Quantity: 1, Price: p.Price},
			{ProductID: 9999, Quantity: 1, Price: 100},
		})
	if err == nil {
		t.Fatal("order with an unknown product should fail")
	}
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}

	orders, err := s.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("failed order must not persist, got %d orders", len(orders))
	}
	items, err := s.ListCartItems(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart must survive a failed checkout, got %d items", len(items))
	}
}

func TestPlaceOrderRequiresItems(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	u := seedUser(t, s, "empty")
	_, err := s.PlaceOrder(context.Background(), models.Order{UserID: u.ID}, nil)
	if err == nil {
		t.Fatal("order without items should fail")
	}
}

func TestListUserOrdersScoped(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	asha := seedUser(t, s, "asha")
	binu := seedUser(t, s, "binu")
	p := seedProduct(t, s, "scoped-saree", 2200)

	for _, u := range []*models.User{asha, asha, binu} {
		if _, err := s.PlaceOrder(ctx, models.Order{UserID: u.ID, Total: p.Price},
			[]models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}}); err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
	}

	all, err := s.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d orders, want 3", len(all))
	}

	ashaOrders, err := s.ListUserOrders(ctx, asha.ID)
	if err != nil {
		t.Fatalf("ListUserOrders: %v", err)
	}
	if len(ashaOrders) != 2 {
		t.Fatalf("asha should see 2 orders, got %d", len(ashaOrders))
	}
	for _, o := range ashaOrders {
		if o.UserID != asha.ID {
			t.Fatalf("foreign order leaked into user listing: %+v", o)
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "status")
	p := seedProduct(t, s, "status-saree", 2700)
	order, err := s.PlaceOrder(ctx, models.Order{UserID: u.ID, Total: p.Price},
		[]models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// The status set is open; admins use values beyond the built-ins.
	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderStatus("shipped"))
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated == nil || updated.Status != "shipped" {
		t.Fatalf("status not updated: %+v", updated)
	}

	missing, err := s.UpdateOrderStatus(ctx, 9999, models.OrderStatusNew)
	if err != nil {
		t.Fatalf("UpdateOrderStatus unknown id: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown id should return nil, got %+v", missing)
	}
}

func TestGetOrderAbsent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	order, err := s.GetOrder(context.Background(), 424242)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order != nil {
		t.Fatalf("missing order should be nil, got %+v", order)
	}
}
