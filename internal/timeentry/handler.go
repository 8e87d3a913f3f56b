package timeentry

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Adprivat/praxislabor/internal/auth"
	"github.com/Adprivat/praxislabor/internal/transport"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

type ServiceAPI interface {
	CreateEntry(userID string, dto EntryFormDTO) (*Entry, error)
	UpdateEntry(entryID, actorID string, actorIsAdmin bool, dto EntryFormDTO) (*Entry, error)
	DeleteEntry(entryID, actorID string, actorIsAdmin bool) error
	ListRecent(userID string, days int) ([]*Entry, error)
	ListFavorites(userID string) ([]*Favorite, error)
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

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto EntryFormDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateEntry(currentUser.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	var dto EntryFormDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateEntry(entryID, currentUser.ID, currentUser.IsAdmin(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.Service.DeleteEntry(entryID, currentUser.ID, currentUser.IsAdmin()); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 366 {
			days = d
		}
	}

	entries, err := h.Service.ListRecent(currentUser.ID, days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	favorites, err := h.Service.ListFavorites(currentUser.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}
