package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type OrderHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
	Templates    *TemplateCache
}

func (h *OrderHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	userID := currentUserID(session)

	items, err := h.Store.ListCartItems(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error fetching cart", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	tmpl := h.Templates.Get("checkout.html")
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

// PlaceOrder turns the cart into an order. Item prices are captured from
// the products as they stand right now; the store commits the order, its
// items, and the cart wipe as one transaction.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	userID := currentUserID(session)

	items, err := h.Store.ListCartItems(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error fetching cart", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	order, err := h.Store.PlaceOrder(r.Context(), models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		Total:           total,
		ShippingAddress: r.FormValue("shipping_address"),
		PaymentMethod:   r.FormValue("payment_method"),
	}, orderItems)
	if err != nil {
		slog.Error("Failed to place order", "user_id", userID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not place your order. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	slog.Info("Order placed", "order_id", order.ID, "user_id", userID, "total", total)
	session.AddFlash(FlashMessage{Type: "success", Message: "Order placed successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/orders/"+strconv.Itoa(order.ID), http.StatusSeeOther)
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	userID := currentUserID(session)

	orders, err := h.Store.ListUserOrders(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Orders":  orders,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	userID := currentUserID(session)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.Store.GetOrder(r.Context(), id)
	if err != nil {
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}
	if order == nil || order.UserID != userID {
		http.NotFound(w, r)
		return
	}

	tmpl := h.Templates.Get("order_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Order":   order,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
