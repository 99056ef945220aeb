package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/go-item-listing/app/api"
	"github.com/mytheresa/go-item-listing/app/logger"
	"github.com/mytheresa/go-item-listing/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	ResolveOrCreate(ctx context.Context, name string) (uint, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("list categories", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
		}
	}

	api.OKResponse(w, ListResponse{Categories: response})
}

// HandleCreate registers a category by name. Known names return their
// existing id.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing name")
		return
	}

	id, err := h.repo.ResolveOrCreate(r.Context(), input.Name)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			api.ErrorResponse(w, http.StatusBadRequest, "Missing name")
			return
		}
		logger.FromContext(r.Context()).Error("create category", "name", input.Name, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.JSONResponse(w, http.StatusCreated, CategoryResponse{
		ID:   id,
		Name: input.Name,
	})
}
