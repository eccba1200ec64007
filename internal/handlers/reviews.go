package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/sessions"
)

type ReviewHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)
	userID := currentUserID(session)

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	product, err := h.Store.GetProduct(r.Context(), productID)
	if err != nil || product == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Rating must be between 1 and 5."})
		http.Redirect(w, r, "/products/"+product.Slug, http.StatusSeeOther)
		return
	}

	if _, err := h.Store.CreateReview(r.Context(), models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   r.FormValue("comment"),
	}); err != nil {
		slog.Error("Failed to create review", "product_id", productID, "user_id", userID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not post your review."})
		http.Redirect(w, r, "/products/"+product.Slug, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Thanks for your review!"})
	http.Redirect(w, r, "/products/"+product.Slug, http.StatusSeeOther)
}

// Helpful records a helpful vote. The counter bump is atomic in the store,
// so simultaneous votes all count.
func (h *ReviewHandler) Helpful(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	review, err := h.Store.MarkReviewHelpful(r.Context(), id)
	if err != nil {
		http.Error(w, "Error recording vote", http.StatusInternalServerError)
		return
	}
	if review == nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.Store.GetProduct(r.Context(), review.ProductID)
	if err != nil || product == nil {
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/products/"+product.Slug, http.StatusSeeOther)
}
