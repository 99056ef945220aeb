package items

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mytheresa/go-item-listing/app/api"
	"github.com/mytheresa/go-item-listing/app/logger"
	"github.com/mytheresa/go-item-listing/models"
)

// multipart parts beyond this size are spooled to temp files.
const maxFormMemory = 8 << 20

type ListResponse struct {
	Items []ItemView `json:"items"`
}

// ItemView is an item with its category resolved to a display name.
type ItemView struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageName string `json:"image_name"`
}

type AddItemResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type ItemProvider interface {
	Insert(ctx context.Context, name string, categoryID uint, imageName string) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	GetAllItems(ctx context.Context) ([]models.Item, error)
	SearchByName(ctx context.Context, keyword string) ([]models.Item, error)
}

type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, name string) (uint, error)
}

type ImageSaver interface {
	Save(ctx context.Context, data []byte) (string, error)
}

type ItemsHandler struct {
	repo           ItemProvider
	categories     CategoryResolver
	images         ImageSaver
	maxUploadBytes int64
}

func NewItemsHandler(r ItemProvider, c CategoryResolver, i ImageSaver, maxUploadBytes int64) *ItemsHandler {
	return &ItemsHandler{
		repo:           r,
		categories:     c,
		images:         i,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ItemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.ErrorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		api.ErrorResponse(w, http.StatusBadRequest, "invalid form data")
		return
	}

	name := r.PostFormValue("name")
	if name == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	category := r.PostFormValue("category")
	if category == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "image is required")
		return
	}
	defer file.Close()

	log := logger.FromContext(r.Context())

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("read uploaded image", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	imageName, err := h.images.Save(r.Context(), data)
	if err != nil {
		log.Error("save image", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	categoryID, err := h.categories.ResolveOrCreate(r.Context(), category)
	if err != nil {
		log.Error("resolve category", "category", category, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to resolve category")
		return
	}

	id, err := h.repo.Insert(r.Context(), name, categoryID, imageName)
	if err != nil {
		log.Error("insert item", "name", name, "category_id", categoryID, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	log.Info("item added", "id", id, "name", name, "category", category, "image_name", imageName)
	api.OKResponse(w, AddItemResponse{
		Message: fmt.Sprintf("item received: %s", name),
		ID:      id,
	})
}

func (h *ItemsHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetAllItems(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("list items", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to get items")
		return
	}
	api.OKResponse(w, ListResponse{Items: toViews(res)})
}

func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 0)
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.repo.GetByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			api.ErrorResponse(w, http.StatusNotFound, "Item not found")
			return
		}
		logger.FromContext(r.Context()).Error("get item", "id", id, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}

	api.OKResponse(w, toView(*item))
}

func (h *ItemsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	res, err := h.repo.SearchByName(r.Context(), keyword)
	if err != nil {
		logger.FromContext(r.Context()).Error("search items", "keyword", keyword, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to search items")
		return
	}
	api.OKResponse(w, ListResponse{Items: toViews(res)})
}

func toView(item models.Item) ItemView {
	return ItemView{
		Name:      item.Name,
		Category:  item.Category.Name,
		ImageName: item.ImageName,
	}
}

func toViews(items []models.Item) []ItemView {
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = toView(item)
	}
	return views
}
