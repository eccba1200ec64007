package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.ListProducts(r.Context(), nil)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	slug := r.FormValue("slug")
	priceStr := r.FormValue("price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if name == "" || slug == "" || err != nil || price < 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, slug and a non-negative price are required."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	product := models.Product{
		Name:        name,
		Slug:        slug,
		Description: r.FormValue("description"),
		Price:       price,
		Features:    splitLines(r.FormValue("features")),
		Fabric:      r.FormValue("fabric"),
		WorkDetails: r.FormValue("work_details"),
		InStock:     r.FormValue("in_stock") != "",
		Featured:    r.FormValue("featured") != "",
	}
	if catStr := r.FormValue("category_id"); catStr != "" {
		if catID, err := strconv.Atoi(catStr); err == nil {
			product.CategoryID = &catID
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.saveProductImage(file, header)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		product.Images = []string{url}
	}

	if _, err := h.Store.CreateProduct(r.Context(), product); err != nil {
		if store.IsUniqueViolation(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: "A product with that slug already exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product."})
		}
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	current, err := h.Store.GetProduct(r.Context(), id)
	if err != nil || current == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	// Only submitted fields make it into the patch; blank means unchanged.
	var patch models.ProductPatch
	if v := r.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := r.FormValue("slug"); v != "" {
		patch.Slug = &v
	}
	if v := r.FormValue("description"); v != "" {
		patch.Description = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid price."})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		patch.Price = &price
	}
	if v := r.FormValue("category_id"); v == "none" {
		patch.ClearCategory = true
	} else if v != "" {
		if catID, err := strconv.Atoi(v); err == nil {
			patch.CategoryID = &catID
		}
	}
	if v := r.FormValue("features"); v != "" {
		features := splitLines(v)
		patch.Features = &features
	}
	if v := r.FormValue("fabric"); v != "" {
		patch.Fabric = &v
	}
	if v := r.FormValue("work_details"); v != "" {
		patch.WorkDetails = &v
	}
	inStock := r.FormValue("in_stock") != ""
	patch.InStock = &inStock
	featured := r.FormValue("featured") != ""
	patch.Featured = &featured

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.saveProductImage(file, header)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		images := append(current.Images, url)
		patch.Images = &images
	}

	if _, err := h.Store.UpdateProduct(r.Context(), id, patch); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	deleted, err := h.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Product is referenced by carts or orders and cannot be deleted."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		}
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	if !deleted {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	name := r.FormValue("name")
	slug := r.FormValue("slug")
	if name == "" || slug == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name and slug are required."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.CreateCategory(r.Context(), models.Category{
		Name:        name,
		Slug:        slug,
		Description: r.FormValue("description"),
	}); err != nil {
		if store.IsUniqueViolation(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: "A category with that slug already exists."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error saving category."})
		}
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid category ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.DeleteCategory(r.Context(), id); err != nil {
		if store.IsForeignKeyViolation(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Category still has products and cannot be deleted."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting category."})
		}
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category deleted."})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// saveProductImage decodes, resizes and stores an uploaded image, returning
// its public URL.
func (h *AdminHandler) saveProductImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	var img image.Image
	var err error
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format %s, only PNG and JPEG are allowed", ext)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image")
	}

	// Max width 800px, preserve aspect ratio
	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join(h.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("error saving image file")
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("error encoding image")
	}
	return "/static/uploads/" + filename, nil
}

func splitLines(value string) []string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
