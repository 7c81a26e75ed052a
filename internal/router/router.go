package router

import (
	"net/http"

	"kuse-store/internal/handler"
	"kuse-store/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the route handlers served by the API.
type Handlers struct {
	System  *handler.SystemHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	Order   *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	r.HandleFunc("/", h.System.Root).Methods(http.MethodGet)
	r.HandleFunc("/test", h.System.Test).Methods(http.MethodGet)
	r.HandleFunc("/seed", h.System.Seed).Methods(http.MethodPost)

	r.HandleFunc("/products", h.Product.List).Methods(http.MethodGet)
	r.HandleFunc("/products", h.Product.Create).Methods(http.MethodPost)

	r.HandleFunc("/reviews", h.Review.List).Methods(http.MethodGet)
	r.HandleFunc("/reviews", h.Review.Create).Methods(http.MethodPost)

	r.HandleFunc("/orders", h.Order.Create).Methods(http.MethodPost)

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS.
	// CORS sits outside the mux so preflight requests never reach method matching.
	var chain http.Handler = r
	chain = middleware.CORS(chain)
	chain = middleware.Logging(logger)(chain)
	chain = middleware.Recovery(logger)(chain)
	chain = middleware.RequestID(logger)(chain)

	return otelhttp.NewHandler(chain, "kuse-store")
}
