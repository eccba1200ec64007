package store

import (
	"context"
	"sync"
	"testing"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

func TestReviewRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "kavita")
	p := seedProduct(t, s, "review-saree", 3200)

	created, err := s.CreateReview(ctx, models.Review{
		ProductID: p.ID,
		UserID:    u.ID,
		Rating:    4,
		Comment:   "Colour slightly lighter than photos, but beautiful weave.",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if created.HelpfulCount != 0 {
		t.Fatalf("new review should start at zero helpful votes, got %d", created.HelpfulCount)
	}

	reviews, err := s.ListProductReviews(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListProductReviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1", len(reviews))
	}
	if reviews[0].Username != "kavita" {
		t.Fatalf("review should carry the reviewer's username, got %q", reviews[0].Username)
	}
	if reviews[0].Rating != 4 {
		t.Fatalf("rating: got %d, want 4", reviews[0].Rating)
	}
}

func TestMarkReviewHelpfulConcurrent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "voter")
	p := seedProduct(t, s, "helpful-saree", 2900)
	review, err := s.CreateReview(ctx, models.Review{ProductID: p.ID, UserID: u.ID, Rating: 5})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	const votes = 20
	var wg sync.WaitGroup
	errs := make(chan error, votes)
	for i := 0; i < votes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.MarkReviewHelpful(ctx, review.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("MarkReviewHelpful: %v", err)
	}

	final, err := s.GetReview(ctx, review.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if final.HelpfulCount != votes {
		t.Fatalf("helpful count: got %d, want %d", final.HelpfulCount, votes)
	}
}

func TestMarkReviewHelpfulUnknown(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	r, err := s.MarkReviewHelpful(context.Background(), 9999)
	if err != nil {
		t.Fatalf("MarkReviewHelpful: %v", err)
	}
	if r != nil {
		t.Fatalf("unknown id should return nil, got %+v", r)
	}
}
