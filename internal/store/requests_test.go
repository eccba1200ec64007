package store

import (
	"context"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestCreateCustomRequestAnonymous(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	req, err := s.CreateCustomRequest(context.Background(), models.CustomRequest{
		Name:         "Walk-in Visitor",
		Email:        "visitor@example.com",
		Phone:        "9876543210",
		Requirements: "Bridal lehenga-style saree in maroon",
		Budget:       "under 20000",
	})
	if err != nil {
		t.Fatalf("CreateCustomRequest: %v", err)
	}
	if req.UserID != nil {
		t.Fatalf("anonymous request should have nil user, got %v", *req.UserID)
	}
	if req.Status != models.RequestStatusNew {
		t.Fatalf("new request should start as %q, got %q", models.RequestStatusNew, req.Status)
	}
	if req.CreatedAt.IsZero() {
		t.Fatal("request should have a timestamp")
	}
}

func TestCreateCustomRequestForcesNewStatus(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	u := seedUser(t, s, "commissioner")
	req, err := s.CreateCustomRequest(context.Background(), models.CustomRequest{
		UserID:       &u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Requirements: "Replica of grandmother's Paithani",
		Status:       models.RequestStatus("done"), // ignored
	})
	if err != nil {
		t.Fatalf("CreateCustomRequest: %v", err)
	}
	if req.Status != models.RequestStatusNew {
		t.Fatalf("caller-supplied status must be ignored, got %q", req.Status)
	}
	if req.UserID == nil || *req.UserID != u.ID {
		t.Fatalf("request should link to user %d, got %v", u.ID, req.UserID)
	}
}

func TestUpdateCustomRequestStatus(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	req, err := s.CreateCustomRequest(ctx, models.CustomRequest{
		Name: "Caller", Email: "caller@example.com", Requirements: "Office wear set",
	})
	if err != nil {
		t.Fatalf("CreateCustomRequest: %v", err)
	}

	updated, err := s.UpdateCustomRequestStatus(ctx, req.ID, models.RequestStatus("in_progress"))
	if err != nil {
		t.Fatalf("UpdateCustomRequestStatus: %v", err)
	}
	if updated == nil || updated.Status != "in_progress" {
		t.Fatalf("status not updated: %+v", updated)
	}

	missing, err := s.UpdateCustomRequestStatus(ctx, 9999, models.RequestStatusNew)
	if err != nil {
		t.Fatalf("UpdateCustomRequestStatus unknown id: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown id should return nil, got %+v", missing)
	}
}

func TestListCustomRequests(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second"} {
		if _, err := s.CreateCustomRequest(ctx, models.CustomRequest{
			Name: name, Email: "x@example.com", Requirements: "something",
		}); err != nil {
			t.Fatalf("CreateCustomRequest: %v", err)
		}
	}

	requests, err := s.ListCustomRequests(ctx)
	if err != nil {
		t.Fatalf("ListCustomRequests: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}
}
