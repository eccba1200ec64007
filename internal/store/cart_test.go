package store

import (
	"context"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestAddCartItemUpsertsByProduct(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "shalini")
	p := seedProduct(t, s, "upsert-saree", 2500)

	first, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	second, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddCartItem again: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("second add should reuse the row: got id %d, want %d", second.ID, first.ID)
	}
	if second.Quantity != 5 {
		t.Fatalf("quantity should accumulate: got %d, want 5", second.Quantity)
	}

	items, err := s.ListCartItems(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart should hold one row, got %d", len(items))
	}
}

func TestAddCartItemDefaultsQuantity(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "kiran")
	p := seedProduct(t, s, "default-qty-saree", 1800)

	item, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 0})
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("zero quantity should default to 1, got %d", item.Quantity)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	u := seedUser(t, s, "lata")
	_, err := s.AddCartItem(context.Background(), models.CartItem{UserID: u.ID, ProductID: 9999, Quantity: 1})
	if err == nil {
		t.Fatal("adding an unknown product should fail")
	}
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestListCartItemsJoinsProducts(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "divya")
	p1 := seedProduct(t, s, "joined-one", 2000)
	p2 := seedProduct(t, s, "joined-two", 3000)
	for _, p := range []*models.Product{p1, p2} {
		if _, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
	}

	items, err := s.ListCartItems(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	byProduct := make(map[int]models.CartItemWithProduct, len(items))
	for _, item := range items {
		byProduct[item.ProductID] = item
	}
	got, ok := byProduct[p1.ID]
	if !ok {
		t.Fatalf("product %d missing from cart", p1.ID)
	}
	if got.Product.Slug != p1.Slug || got.Product.Price != p1.Price {
		t.Fatalf("joined product wrong: %+v", got.Product)
	}
}

func TestUpdateCartItemQuantity(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "rekha")
	p := seedProduct(t, s, "update-qty-saree", 2100)
	item, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}

	qty := 4
	updated, err := s.UpdateCartItem(ctx, item.ID, models.CartItemPatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("UpdateCartItem: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("quantity not updated: %+v", updated)
	}

	// Empty patch leaves the row alone.
	same, err := s.UpdateCartItem(ctx, item.ID, models.CartItemPatch{})
	if err != nil {
		t.Fatalf("UpdateCartItem empty patch: %v", err)
	}
	if same.Quantity != 4 {
		t.Fatalf("empty patch changed the row: %+v", same)
	}
}

func TestDeleteCartItem(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "sunita")
	p := seedProduct(t, s, "delete-saree", 1500)
	item, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}

	deleted, err := s.DeleteCartItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("DeleteCartItem: %v", err)
	}
	if !deleted {
		t.Fatal("delete should report a removed row")
	}
	deleted, err = s.DeleteCartItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("DeleteCartItem again: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report no row")
	}
}

func TestClearCartOnlyAffectsOwner(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	bela := seedUser(t, s, "bela")
	p := seedProduct(t, s, "shared-saree", 2600)
	for _, u := range []*models.User{alice, bela} {
		if _, err := s.AddCartItem(ctx, models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
	}

	if err := s.ClearCart(ctx, alice.ID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	aliceItems, err := s.ListCartItems(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(aliceItems) != 0 {
		t.Fatalf("alice's cart should be empty, got %d items", len(aliceItems))
	}
	belaItems, err := s.ListCartItems(ctx, bela.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	if len(belaItems) != 1 {
		t.Fatalf("bela's cart should be untouched, got %d items", len(belaItems))
	}
}
