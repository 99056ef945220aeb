package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/mytheresa/go-item-listing/app/api"
	"github.com/mytheresa/go-item-listing/app/categories"
	"github.com/mytheresa/go-item-listing/app/config"
	"github.com/mytheresa/go-item-listing/app/images"
	"github.com/mytheresa/go-item-listing/app/items"
	"github.com/mytheresa/go-item-listing/models"
)

// NewRouter wires repositories, the image store and handlers into one
// handler wrapped with logging, CORS and metrics middleware.
func NewRouter(cfg config.ServerConfig, db *gorm.DB, store *images.Store, reg *prometheus.Registry) http.Handler {
	itemsRepo := models.NewItemsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)

	itemsHandler := items.NewItemsHandler(itemsRepo, categoriesRepo, store, cfg.MaxUploadBytes)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	imageHandler := images.NewImageHandler(store)
	metrics := api.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", api.HandleRoot)
	mux.HandleFunc("POST /items", itemsHandler.HandleCreate)
	mux.HandleFunc("GET /items", itemsHandler.HandleGetAll)
	mux.HandleFunc("GET /items/{id}", itemsHandler.HandleGet)
	mux.HandleFunc("GET /search", itemsHandler.HandleSearch)
	mux.HandleFunc("GET /image/{name}", imageHandler.HandleGet)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = api.CORS(cfg.CORSAllowedOrigins, handler)
	handler = api.RequestLogging(handler)
	return handler
}
