package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MonksterFX/fermentation-station/internal/api/shared"
	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/query"
	"github.com/MonksterFX/fermentation-station/internal/service"
)

// QueryHandler serves the read-only derived views: reminder lists and the
// dashboard stats.
type QueryHandler struct {
	ferments service.FermentService
	timeFunc func() time.Time
	logger   *slog.Logger
}

// NewQueryHandler creates a new QueryHandler with the given dependencies.
func NewQueryHandler(ferments service.FermentService, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		ferments: ferments,
		timeFunc: time.Now,
		logger:   logger.With("component", "query_handler"),
	}
}

// Reminders handles GET /api/reminders. With ?upcoming=N the response is
// limited to the N soonest incomplete reminders; otherwise every reminder is
// returned, bucketed by date.
func (h *QueryHandler) Reminders(w http.ResponseWriter, r *http.Request) {
	ferments := h.ferments.ListFerments(r.Context())
	now := h.timeFunc()

	if raw := r.URL.Query().Get("upcoming"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid upcoming limit")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, query.Upcoming(ferments, now, limit))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, query.AllReminders(ferments, now))
}

// Stats handles GET /api/stats.
func (h *QueryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ferments := h.ferments.ListFerments(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, query.Aggregate(ferments))
}

// parseStatusFilter reads an optional ?status= query parameter. An absent
// parameter yields the empty status, meaning no filter.
func parseStatusFilter(r *http.Request) (domain.FermentStatus, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return "", nil
	}
	status := domain.FermentStatus(raw)
	if !status.IsValid() {
		return "", domain.ErrInvalidStatus
	}
	return status, nil
}
