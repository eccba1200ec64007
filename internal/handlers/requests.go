package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

// CustomRequestHandler takes bespoke saree commissions. Requests work
// without an account; a logged-in visitor gets linked automatically.
type CustomRequestHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
	Templates    *TemplateCache
}

func (h *CustomRequestHandler) Form(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("custom_request.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CustomRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	name := r.FormValue("name")
	email := r.FormValue("email")
	requirements := r.FormValue("requirements")
	if name == "" || email == "" || requirements == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, email and requirements are required."})
		http.Redirect(w, r, "/custom-request", http.StatusSeeOther)
		return
	}

	req := models.CustomRequest{
		Name:         name,
		Email:        email,
		Phone:        r.FormValue("phone"),
		Requirements: requirements,
		Budget:       r.FormValue("budget"),
	}
	if userID := currentUserID(session); userID != 0 {
		req.UserID = &userID
	}

	created, err := h.Store.CreateCustomRequest(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create custom request", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not submit your request. Please try again."})
		http.Redirect(w, r, "/custom-request", http.StatusSeeOther)
		return
	}

	slog.Info("Custom request received", "request_id", created.ID)
	session.AddFlash(FlashMessage{Type: "success", Message: "Request received! We will be in touch soon."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
