package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/erazemk/evidenca/internal/inventory"
	"github.com/erazemk/evidenca/internal/model"
)

// Options configures the router.
type Options struct {
	JWTSecret string
	Log       zerolog.Logger
	// Gatherer, when set, is served on GET /metrics.
	Gatherer prometheus.Gatherer
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(engine *inventory.Engine, opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Engine: engine, JWTSecret: opts.JWTSecret}
	usersHandler := &UsersHandler{Engine: engine}
	typesHandler := &TypesHandler{Engine: engine}
	placesHandler := &PlacesHandler{Engine: engine}
	itemsHandler := &ItemsHandler{Engine: engine}
	historyHandler := &HistoryHandler{Engine: engine}

	authMW := AuthMiddleware(opts.JWTSecret, engine.StoreID)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	read := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	write := func(h http.HandlerFunc) http.Handler { return authMW(requireManager(h)) }

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("PUT /api/auth/password", read(authHandler.ChangePassword))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))

	// Reference data: read (all roles), write (manager+).
	mux.Handle("GET /api/types", read(typesHandler.List))
	mux.Handle("POST /api/types", write(typesHandler.Create))
	mux.Handle("GET /api/types/{id}", read(typesHandler.Get))
	mux.Handle("PUT /api/types/{id}", write(typesHandler.Rename))

	mux.Handle("GET /api/places", read(placesHandler.List))
	mux.Handle("POST /api/places", write(placesHandler.Create))
	mux.Handle("GET /api/places/{id}", read(placesHandler.Get))
	mux.Handle("PUT /api/places/{id}", write(placesHandler.Rename))

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", read(itemsHandler.List))
	mux.Handle("POST /api/items", write(itemsHandler.Create))
	mux.Handle("GET /api/items/{id}", read(itemsHandler.Get))
	mux.Handle("PATCH /api/items/{id}", write(itemsHandler.UpdateField))
	mux.Handle("POST /api/items/{id}/move", write(itemsHandler.Move))
	mux.Handle("POST /api/items/{id}/deactivate", write(itemsHandler.Deactivate))
	mux.Handle("GET /api/items/{id}/history", read(itemsHandler.History))

	mux.Handle("GET /api/history", read(historyHandler.List))
	mux.Handle("GET /api/stats", read(historyHandler.Stats))
	mux.Handle("GET /api/export/items", read(historyHandler.ExportItems))
	mux.Handle("GET /api/export/history", read(historyHandler.ExportHistory))

	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return LoggingMiddleware(opts.Log)(mux)
}
