package router

import (
	"net/http"

	"autokit/internal/handler"
	"autokit/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	rootHandler *handler.RootHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	diagnosticsHandler *handler.DiagnosticsHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Diagnostics endpoint
	mux.HandleFunc("/test", diagnosticsHandler.Status)

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products", "/api/products/":
			productHandler.List(w, r)
		case "/api/products/featured":
			productHandler.Featured(w, r)
		default:
			productHandler.GetBySlug(w, r)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/" {
			orderHandler.Create(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Banner / catch-all
	mux.HandleFunc("/", rootHandler.Index)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
