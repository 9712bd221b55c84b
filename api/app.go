package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"solareda/adapters/loader"
	"solareda/internal/config"
	"solareda/ports"
)

// App exposes dataset quality reports as structured JSON. It renders
// nothing: callers fetch the report data and display it however they like.
type App struct {
	router *chi.Mux
	store  ports.DatasetStore
	data   config.DataConfig
}

// NewApp creates the report API application backed by the file loader
func NewApp(cfg *config.Config) *App {
	return NewAppWithStore(cfg, loader.NewLoader(cfg.Data.BaseDir))
}

// NewAppWithStore creates the application with an explicit dataset store
func NewAppWithStore(cfg *config.Config, store ports.DatasetStore) *App {
	app := &App{
		router: chi.NewRouter(),
		store:  store,
		data:   cfg.Data,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Get("/api/datasets", a.handleListDatasets)
	a.router.Get("/api/datasets/{name}/profile", a.handleProfile)
	a.router.Get("/api/datasets/{name}/outliers", a.handleOutliers)
	a.router.Get("/api/datasets/{name}/correlations", a.handleCorrelations)
	a.router.Post("/api/datasets/{name}/clean", a.handleClean)
}

// Router exposes the underlying handler, mostly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("Starting solareda report API on %s (data dir: %s)", addr, a.data.BaseDir)
	return http.ListenAndServe(addr, a.router)
}
