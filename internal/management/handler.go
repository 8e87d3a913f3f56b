package management

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Adprivat/praxislabor/internal/transport"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

type ServiceAPI interface {
	GetOverview(query OverviewQuery) (*Overview, error)
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

// GetOverview serves the aggregated snapshot for the requested range.
// Query params: period (month|year|custom), from, to, userId.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.GetOverview(queryFromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, overview)
}

// ExportCSV serves the same snapshot's per-user breakdown as a CSV
// attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.GetOverview(queryFromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(overview)))
	w.WriteHeader(http.StatusOK)
	if err := WriteCSV(w, overview); err != nil {
		h.Logger.Error("failed to write csv export", "error", err)
	}
}

func queryFromRequest(r *http.Request) OverviewQuery {
	params := r.URL.Query()
	rangeStart, rangeEnd := DetermineRange(
		params.Get("period"),
		params.Get("from"),
		params.Get("to"),
		time.Now(),
	)
	return OverviewQuery{
		UserID:     params.Get("userId"),
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
	}
}
