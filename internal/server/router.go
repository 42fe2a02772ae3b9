package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/lagape/traiteur/internal/config"
	"github.com/lagape/traiteur/internal/handlers"
	"github.com/lagape/traiteur/internal/httpx"
	"github.com/lagape/traiteur/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	catalog := services.NewCatalogService(db)
	invoices := services.NewInvoiceService(db)
	stats := services.NewStatsService(db)

	// Provider endpoints
	prov := handlers.NewProviderHandler(catalog)
	mux.Handle("/providers", listCreate(prov.List, prov.Create))
	mux.Handle("/providers/get", methodOnly(http.MethodGet, prov.Get))
	mux.Handle("/providers/update", methodOnly(http.MethodPost, prov.Update))
	mux.Handle("/providers/delete", methodOnly(http.MethodPost, prov.Delete))

	// Product endpoints
	prod := handlers.NewProductHandler(catalog)
	mux.Handle("/products", listCreate(prod.List, prod.Create))
	mux.Handle("/products/update", methodOnly(http.MethodPost, prod.Update))
	mux.Handle("/products/active", methodOnly(http.MethodPost, prod.SetActive))
	mux.Handle("/products/delete", methodOnly(http.MethodPost, prod.Delete))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(invoices, catalog, cfg)
	mux.Handle("/invoices", listCreate(ih.List, ih.Create))
	mux.Handle("/invoices/get", methodOnly(http.MethodGet, ih.Get))
	mux.Handle("/invoices/preview", methodOnly(http.MethodPost, ih.Preview))
	mux.Handle("/invoices/pdf", methodOnly(http.MethodGet, ih.PDF))

	// Dashboard endpoints
	sh := handlers.NewStatsHandler(stats, catalog)
	mux.Handle("/stats/month", methodOnly(http.MethodGet, sh.Month))
	mux.Handle("/stats/year", methodOnly(http.MethodGet, sh.Year))

	return withRecover(withLogging(mux))
}

// listCreate dispatches GET to list and POST to create on a collection path.
func listCreate(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
}

func methodOnly(method string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
