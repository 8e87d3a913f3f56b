package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Adprivat/praxislabor/internal/transport"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

type ServiceAPI interface {
	AdminCatalog() (*Catalog, error)
	ActiveCatalog() (*Catalog, error)
	CreateCategory(dto CreateCategoryDTO) (*Category, error)
	CreateTag(dto CreateTagDTO) (*Tag, error)
	CreateBlock(dto CreateBlockDTO) (*Block, error)
	ToggleCategory(id int64, active bool) error
	ToggleTag(id int64, active bool) error
	ToggleBlock(id int64, active bool) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// GetActiveCatalog serves the picker catalog for any authenticated user.
func (h *Handler) GetActiveCatalog(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.ActiveCatalog()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// GetAdminCatalog serves the full catalog, inactive rows included.
func (h *Handler) GetAdminCatalog(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.AdminCatalog()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var dto CreateTagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := h.Service.CreateTag(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, tag)
}

func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var dto CreateBlockDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	block, err := h.Service.CreateBlock(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, block)
}

func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.ToggleCategory)
}

func (h *Handler) ToggleTag(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.ToggleTag)
}

func (h *Handler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.ToggleBlock)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(int64, bool) error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var dto ToggleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := fn(id, dto.Active); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"active": dto.Active})
}
