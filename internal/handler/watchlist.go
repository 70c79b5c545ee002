package handler

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/auction-house/internal/metrics"
	"github.com/msomdec/auction-house/internal/service"
	"github.com/msomdec/auction-house/internal/view"
)

// WatchlistHandler serves the watchlist page and toggle.
type WatchlistHandler struct {
	watchlist *service.WatchlistService
	metrics   *metrics.Metrics
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlist *service.WatchlistService, m *metrics.Metrics) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, metrics: m}
}

// HandleWatchlist lists the listings the current user watches.
// GET /watchlist
func (h *WatchlistHandler) HandleWatchlist(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	listings, err := h.watchlist.List(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, "list watchlist", err)
		return
	}
	render(w, r, http.StatusOK, view.ListingsPage(user.Username, "Watchlist", listings))
}

// HandleToggle adds the listing to the watchlist or removes it. Datastar
// requests get the updated button over SSE; others are redirected back to
// the listing.
// GET|POST /changewl/{id}
func (h *WatchlistHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := UserFromContext(r.Context())

	watching, err := h.watchlist.Toggle(r.Context(), user.ID, id)
	if err != nil {
		handleServiceError(w, r, "toggle watchlist", err)
		return
	}
	h.metrics.WatchlistToggled(watching)
	slog.Debug("watchlist toggled", "listing_id", id, "user_id", user.ID, "watching", watching)

	if isDatastar(r) {
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.WatchButton(id, watching))
		return
	}
	http.Redirect(w, r, displayPath(id), http.StatusSeeOther)
}
