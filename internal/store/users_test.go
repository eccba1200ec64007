package store

import (
	"context"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestUserRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, models.User{
		Username: "priya",
		Password: "hash",
		Name:     "Priya",
		Email:    "priya@example.com",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created user should have an id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("created user should have a timestamp")
	}

	byID, err := s.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if byID == nil || byID.Username != "priya" || !byID.IsAdmin {
		t.Fatalf("GetUser returned %+v", byID)
	}

	byName, err := s.GetUserByUsername(ctx, "priya")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("GetUserByUsername returned %+v", byName)
	}
}

func TestGetUserAbsent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetUser(ctx, 12345)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u != nil {
		t.Fatalf("missing user should be nil, got %+v", u)
	}

	u, err = s.GetUserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u != nil {
		t.Fatalf("missing user should be nil, got %+v", u)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "meera")
	_, err := s.CreateUser(ctx, models.User{Username: "meera", Password: "hash"})
	if err == nil {
		t.Fatal("duplicate username should fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "anita")

	name := "Anita Desai"
	email := "anita.desai@example.com"
	updated, err := s.UpdateUser(ctx, u.ID, models.UserPatch{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != name || updated.Email != email {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	if updated.Username != u.Username || updated.Password != u.Password {
		t.Fatal("untouched fields must not change")
	}

	// Empty patch is a no-op fetch.
	same, err := s.UpdateUser(ctx, u.ID, models.UserPatch{})
	if err != nil {
		t.Fatalf("UpdateUser empty patch: %v", err)
	}
	if same.Name != name {
		t.Fatalf("empty patch changed the row: %+v", same)
	}
}

func TestUpdateUserUnknown(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	name := "ghost"
	u, err := s.UpdateUser(context.Background(), 9999, models.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if u != nil {
		t.Fatalf("unknown id should return nil, got %+v", u)
	}
}
