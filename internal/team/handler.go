package team

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/Adprivat/praxislabor/internal/auth"
	"github.com/Adprivat/praxislabor/internal/transport"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

type ServiceAPI interface {
	TeamOverview() (*Overview, error)
	CreateEmployee(actor *auth.User, dto CreateEmployeeDTO) (*Member, error)
	DeactivateEmployee(actor *auth.User, userID string) error
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

func (h *Handler) GetTeamOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.TeamOverview()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.Service.CreateEmployee(currentUser, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := auth.UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.Service.DeactivateEmployee(currentUser, userID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
