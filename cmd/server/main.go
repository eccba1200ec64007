package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lakshit1111/SurdarshanSarees/internal/config"
	"github.com/Lakshit1111/SurdarshanSarees/internal/handlers"
	"github.com/Lakshit1111/SurdarshanSarees/internal/session"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"github.com/gorilla/csrf"
)

func main() {
	// Configure slog as early as possible in main.
	// TextHandler for console readability; for production JSONHandler might be preferred.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB (migrations run inside Open)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup (persisted in the same SQLite file)
	sessionStore := session.NewSQLiteStore(db.DB, cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}
	stopCleanup := sessionStore.StartCleanup(time.Hour)
	defer stopCleanup()

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	accountHandler := &handlers.AccountHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	cartHandler := &handlers.CartHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	orderHandler := &handlers.OrderHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	reviewHandler := &handlers.ReviewHandler{
		Store:        db,
		SessionStore: sessionStore,
	}
	requestHandler := &handlers.CustomRequestHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		UploadDir:    cfg.UploadDir,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for anonymous form submissions
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("/{$}", shopHandler.Index)
	mux.HandleFunc("/shop", shopHandler.Browse)
	mux.HandleFunc("/products/{slug}", shopHandler.ProductDetail)

	mux.HandleFunc("/register", accountHandler.RegisterGet)
	mux.HandleFunc("POST /register", accountHandler.RegisterPost)
	mux.HandleFunc("/login", accountHandler.LoginGet)
	mux.HandleFunc("POST /login", accountHandler.LoginPost)
	mux.HandleFunc("/logout", accountHandler.Logout)

	mux.HandleFunc("/custom-request", requestHandler.Form)
	mux.HandleFunc("POST /custom-request", rateLimiter.Middleware(requestHandler.Submit))

	// Customer Routes
	mux.HandleFunc("/cart", accountHandler.RequireLogin(cartHandler.View))
	mux.HandleFunc("POST /cart/add", accountHandler.RequireLogin(cartHandler.Add))
	mux.HandleFunc("POST /cart/update", accountHandler.RequireLogin(cartHandler.Update))
	mux.HandleFunc("POST /cart/remove", accountHandler.RequireLogin(cartHandler.Remove))
	mux.HandleFunc("POST /cart/clear", accountHandler.RequireLogin(cartHandler.Clear))

	mux.HandleFunc("/checkout", accountHandler.RequireLogin(orderHandler.CheckoutForm))
	mux.HandleFunc("POST /checkout", accountHandler.RequireLogin(orderHandler.PlaceOrder))
	mux.HandleFunc("/orders", accountHandler.RequireLogin(orderHandler.MyOrders))
	mux.HandleFunc("/orders/{id}", accountHandler.RequireLogin(orderHandler.OrderDetail))

	mux.HandleFunc("POST /reviews", accountHandler.RequireLogin(reviewHandler.Create))
	mux.HandleFunc("POST /reviews/helpful", reviewHandler.Helpful)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("/admin/orders", adminHandler.RequireAdmin(adminHandler.ListOrders))
	mux.HandleFunc("/admin/orders/{id}", adminHandler.RequireAdmin(adminHandler.OrderDetail))
	mux.HandleFunc("POST /admin/orders/update", adminHandler.RequireAdmin(adminHandler.UpdateOrderStatus))

	mux.HandleFunc("/admin/products", adminHandler.RequireAdmin(adminHandler.ListProducts))
	mux.HandleFunc("POST /admin/products", adminHandler.RequireAdmin(adminHandler.CreateProduct))
	mux.HandleFunc("POST /admin/products/update", adminHandler.RequireAdmin(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.RequireAdmin(adminHandler.DeleteProduct))
	mux.HandleFunc("POST /admin/categories", adminHandler.RequireAdmin(adminHandler.CreateCategory))
	mux.HandleFunc("POST /admin/categories/delete", adminHandler.RequireAdmin(adminHandler.DeleteCategory))

	mux.HandleFunc("/admin/requests", adminHandler.RequireAdmin(adminHandler.ListCustomRequests))
	mux.HandleFunc("POST /admin/requests/update", adminHandler.RequireAdmin(adminHandler.UpdateRequestStatus))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
