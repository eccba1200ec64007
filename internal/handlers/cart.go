package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type CartHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
	Templates    *TemplateCache
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	userID := currentUserID(session)

	items, err := h.Store.ListCartItems(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrIntegrity) {
			slog.Error("Cart references a missing product", "user_id", userID, "error", err)
		}
		http.Error(w, "Error fetching cart", http.StatusInternalServerError)
		return
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Items":     items,
		"Total":     total,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Add puts a product in the cart. Adding the same product again bumps the
// quantity of the existing row instead of creating a duplicate.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)
	userID := currentUserID(session)

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}
	quantity, _ := strconv.Atoi(r.FormValue("quantity")) // AddCartItem treats <=0 as 1

	if _, err := h.Store.AddCartItem(r.Context(), models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		slog.Error("Failed to add to cart", "user_id", userID, "product_id", productID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not add to cart."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Added to cart!"})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid cart item."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity <= 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Quantity must be a positive number."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	item, err := h.Store.GetCartItem(r.Context(), id)
	if err != nil || item == nil || item.UserID != currentUserID(session) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Cart item not found."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.UpdateCartItem(r.Context(), id, models.CartItemPatch{Quantity: &quantity}); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not update cart."})
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid cart item."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	item, err := h.Store.GetCartItem(r.Context(), id)
	if err != nil || item == nil || item.UserID != currentUserID(session) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Cart item not found."})
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.DeleteCartItem(r.Context(), id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not remove item."})
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := h.Store.ClearCart(r.Context(), currentUserID(session)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not clear cart."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Cart cleared."})
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
