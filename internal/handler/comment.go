package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/metrics"
	"github.com/msomdec/auction-house/internal/service"
	"github.com/msomdec/auction-house/internal/view"
)

// CommentHandler serves the comment page.
type CommentHandler struct {
	comments *service.CommentService
	listings *service.ListingService
	metrics  *metrics.Metrics
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService, listings *service.ListingService, m *metrics.Metrics) *CommentHandler {
	return &CommentHandler{comments: comments, listings: listings, metrics: m}
}

// HandleCommentPage renders the comment form for an open listing.
// GET /comment/{id}
func (h *CommentHandler) HandleCommentPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.comments.CheckOpen(r.Context(), id); err != nil {
		handleServiceError(w, r, "load listing", err)
		return
	}
	h.renderPage(w, r, http.StatusOK, id, "")
}

// HandleAddComment posts a comment. Datastar requests get the refreshed
// comment list and a cleared form over SSE; others are redirected to the
// listing.
// POST /comment/{id}
func (h *CommentHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := UserFromContext(r.Context())

	_, err := h.comments.Add(r.Context(), user.ID, id, r.FormValue("content"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			if isDatastar(r) {
				sse := datastar.NewSSE(w, r)
				sse.PatchElementTempl(view.CommentForm(id, formMessage(err)))
				return
			}
			h.renderPage(w, r, http.StatusUnprocessableEntity, id, formMessage(err))
			return
		}
		handleServiceError(w, r, "add comment", err)
		return
	}

	h.metrics.CommentPosted()
	slog.Info("comment posted", "listing_id", id, "writer_id", user.ID)

	if isDatastar(r) {
		comments, err := h.comments.ListByListing(r.Context(), id)
		if err != nil {
			slog.Error("list comments", "listing_id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		sse := datastar.NewSSE(w, r)
		sse.PatchElementTempl(view.CommentList(comments))
		sse.PatchElementTempl(view.CommentForm(id, ""))
		return
	}
	http.Redirect(w, r, displayPath(id), http.StatusSeeOther)
}

func (h *CommentHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, id int64, msg string) {
	user := UserFromContext(r.Context())
	d, err := h.listings.Detail(r.Context(), user.ID, id)
	if err != nil {
		handleServiceError(w, r, "load listing", err)
		return
	}
	render(w, r, status, view.CommentPage(user.Username, d, msg))
}
