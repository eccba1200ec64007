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

type AdminHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
	Templates    *TemplateCache
	UploadDir    string
}

// RequireAdmin ensures the logged-in user has the admin flag.
func (h *AdminHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		userID := currentUserID(session)
		if userID == 0 {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		user, err := h.Store.GetUser(r.Context(), userID)
		if err != nil || user == nil || !user.IsAdmin {
			slog.Warn("Non-admin attempted admin route", "user_id", userID, "path", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats(r.Context())
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Stats":   stats,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrders(r.Context())
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Orders":    orders,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
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
	if order == nil {
		http.NotFound(w, r)
		return
	}

	tmpl := h.Templates.Get("admin_order_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Order":     order,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid order ID."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}
	status := r.FormValue("status")
	if status == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Status is required."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	order, err := h.Store.UpdateOrderStatus(r.Context(), id, models.OrderStatus(status))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating order."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}
	if order == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order status updated."})
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

func (h *AdminHandler) ListCustomRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListCustomRequests(r.Context())
	if err != nil {
		http.Error(w, "Error fetching requests", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_requests.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Requests":  requests,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid request ID."})
		http.Redirect(w, r, "/admin/requests", http.StatusSeeOther)
		return
	}
	status := r.FormValue("status")
	if status == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Status is required."})
		http.Redirect(w, r, "/admin/requests", http.StatusSeeOther)
		return
	}

	req, err := h.Store.UpdateCustomRequestStatus(r.Context(), id, models.RequestStatus(status))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating request."})
		http.Redirect(w, r, "/admin/requests", http.StatusSeeOther)
		return
	}
	if req == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Request not found."})
		http.Redirect(w, r, "/admin/requests", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Request status updated."})
	http.Redirect(w, r, "/admin/requests", http.StatusSeeOther)
}
