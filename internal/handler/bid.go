package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/metrics"
	"github.com/msomdec/auction-house/internal/service"
	"github.com/msomdec/auction-house/internal/view"
)

// BidHandler serves the bid form.
type BidHandler struct {
	bids     *service.BidService
	listings *service.ListingService
	metrics  *metrics.Metrics
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bids *service.BidService, listings *service.ListingService, m *metrics.Metrics) *BidHandler {
	return &BidHandler{bids: bids, listings: listings, metrics: m}
}

// HandleBidPage renders the listing with the bid form. Sellers and closed
// listings get a 404.
// GET /placebid/{id}
func (h *BidHandler) HandleBidPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := UserFromContext(r.Context())

	if _, err := h.bids.CheckEligible(r.Context(), user.ID, id); err != nil {
		handleServiceError(w, r, "check bid eligibility", err)
		return
	}
	h.renderForm(w, r, http.StatusOK, user, id, "")
}

// HandlePlaceBid records a bid. A bid that does not beat the current price
// re-renders the form with an explanation.
// POST /placebid/{id}
func (h *BidHandler) HandlePlaceBid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := UserFromContext(r.Context())

	bid, err := h.bids.PlaceBid(r.Context(), user.ID, id, r.FormValue("yourbid"))
	if err != nil {
		h.metrics.BidPlaced(bidResult(err))
		if errors.Is(err, domain.ErrInvalidInput) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, user, id, formMessage(err))
			return
		}
		handleServiceError(w, r, "place bid", err)
		return
	}

	h.metrics.BidPlaced(metrics.BidAccepted)
	slog.Info("bid placed", "listing_id", id, "bidder_id", user.ID, "amount", bid.Amount.String())
	http.Redirect(w, r, displayPath(id), http.StatusSeeOther)
}

func (h *BidHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, user *domain.User, id int64, msg string) {
	d, err := h.listings.Detail(r.Context(), user.ID, id)
	if err != nil {
		handleServiceError(w, r, "load listing", err)
		return
	}
	render(w, r, status, view.DisplayPage(user.Username, d, msg, true))
}

func bidResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrBidTooLow):
		return metrics.BidTooLow
	case errors.Is(err, domain.ErrListingClosed):
		return metrics.BidClosed
	case errors.Is(err, domain.ErrForbidden):
		return metrics.BidForbidden
	default:
		return metrics.BidInvalid
	}
}
