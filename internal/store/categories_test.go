package store

import (
	"context"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestCategoryRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, models.Category{
		Name:        "Banarasi",
		Slug:        "banarasi",
		Description: "Woven in Varanasi",
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	byID, err := s.GetCategory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if byID == nil || byID.Slug != "banarasi" {
		t.Fatalf("GetCategory returned %+v", byID)
	}

	bySlug, err := s.GetCategoryBySlug(ctx, "banarasi")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Fatalf("GetCategoryBySlug returned %+v", bySlug)
	}

	missing, err := s.GetCategoryBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing category should be nil, got %+v", missing)
	}
}

func TestListCategoriesSortedByName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	for _, c := range []models.Category{
		{Name: "Kanjivaram", Slug: "kanjivaram"},
		{Name: "Banarasi", Slug: "banarasi"},
		{Name: "Chanderi", Slug: "chanderi"},
	} {
		if _, err := s.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory(%q): %v", c.Slug, err)
		}
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(categories))
	}
	want := []string{"Banarasi", "Chanderi", "Kanjivaram"}
	for i, name := range want {
		if categories[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	seedCategory(t, s, "silk")
	_, err := s.CreateCategory(context.Background(), models.Category{Name: "Silk Again", Slug: "silk"})
	if err == nil {
		t.Fatal("duplicate slug should fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "cotton")
	desc := "Handloom cotton sarees"
	updated, err := s.UpdateCategory(ctx, c.ID, models.CategoryPatch{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Description != desc {
		t.Fatalf("description not updated: %+v", updated)
	}
	if updated.Name != c.Name || updated.Slug != c.Slug {
		t.Fatal("untouched fields must not change")
	}
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "georgette")
	deleted, err := s.DeleteCategory(ctx, c.ID)
	if err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if !deleted {
		t.Fatal("delete should report a removed row")
	}

	deleted, err = s.DeleteCategory(ctx, c.ID)
	if err != nil {
		t.Fatalf("DeleteCategory again: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report no row")
	}
}

func TestDeleteCategoryWithProductsRejected(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "tussar")
	if _, err := s.CreateProduct(ctx, models.Product{
		Name:       "Tussar Classic",
		Slug:       "tussar-classic",
		Price:      4500,
		CategoryID: &c.ID,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	_, err := s.DeleteCategory(ctx, c.ID)
	if err == nil {
		t.Fatal("deleting a category with products should fail")
	}
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}
