package handlers

import (
	"net/http"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/schema"
	"github.com/gorilla/sessions"
)

var filterDecoder = newFilterDecoder()

func newFilterDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type ShopHandler struct {
	Store        store.Storage
	SessionStore sessions.Store
	Templates    *TemplateCache
}

// Index shows featured products on the landing page.
func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	featured := true
	products, err := h.Store.ListProducts(r.Context(), &models.ProductFilter{Featured: &featured})
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"Flashes":    GetFlash(session),
		"LoggedIn":   currentUserID(session) != 0,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Browse lists products filtered by the query string: category, featured,
// min_price/max_price, search, fabric, work. Unknown params are ignored.
func (h *ShopHandler) Browse(w http.ResponseWriter, r *http.Request) {
	var filter models.ProductFilter
	if err := filterDecoder.Decode(&filter, r.URL.Query()); err != nil {
		http.Error(w, "Invalid filter", http.StatusBadRequest)
		return
	}

	products, err := h.Store.ListProducts(r.Context(), &filter)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("browse.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"Query":      r.URL.Query(),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ProductDetail renders one product by slug along with its reviews.
func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	product, err := h.Store.GetProductBySlug(r.Context(), slug)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	reviews, err := h.Store.ListProductReviews(r.Context(), product.ID)
	if err != nil {
		http.Error(w, "Error fetching reviews", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Product":   product,
		"Reviews":   reviews,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"LoggedIn":  currentUserID(session) != 0,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
