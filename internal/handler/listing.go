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

// ListingHandler serves the listing pages and the seller's close action.
type ListingHandler struct {
	listings *service.ListingService
	closer   *service.AuctionCloser
	metrics  *metrics.Metrics
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService, closer *service.AuctionCloser, m *metrics.Metrics) *ListingHandler {
	return &ListingHandler{listings: listings, closer: closer, metrics: m}
}

// HandleIndex lists every listing, newest first.
// GET /
func (h *ListingHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.List(r.Context())
	if err != nil {
		handleServiceError(w, r, "list listings", err)
		return
	}
	render(w, r, http.StatusOK, view.ListingsPage(username(r), "Active Listings", listings))
}

// HandleSellingList lists the current user's own listings.
// GET /sellinglist
func (h *ListingHandler) HandleSellingList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	listings, err := h.listings.ListBySeller(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, "list seller listings", err)
		return
	}
	render(w, r, http.StatusOK, view.ListingsPage(user.Username, "Selling", listings))
}

// HandleCreatePage renders the new listing form.
// GET /create
func (h *ListingHandler) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.CreatePage(username(r), "", "", "", ""))
}

// HandleCreate stores a new listing and redirects to it.
// POST /create
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	title := r.FormValue("title")
	description := r.FormValue("description")
	startBid := r.FormValue("startBid")

	listing, err := h.listings.Create(r.Context(), user.ID, title, description, startBid)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			render(w, r, http.StatusUnprocessableEntity, view.CreatePage(user.Username, formMessage(err), title, description, startBid))
			return
		}
		handleServiceError(w, r, "create listing", err)
		return
	}

	h.metrics.ListingCreated()
	slog.Info("listing created", "listing_id", listing.ID, "seller_id", user.ID)
	http.Redirect(w, r, displayPath(listing.ID), http.StatusSeeOther)
}

// HandleDisplay shows an open listing, or the result of a closed one.
// GET /display/{id}
func (h *ListingHandler) HandleDisplay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var viewerID int64
	if user := UserFromContext(r.Context()); user != nil {
		viewerID = user.ID
	}

	d, err := h.listings.Detail(r.Context(), viewerID, id)
	if err != nil {
		handleServiceError(w, r, "load listing", err)
		return
	}

	if d.Listing.Finished {
		winner, err := h.closer.Winner(r.Context(), d.Listing)
		if err != nil {
			handleServiceError(w, r, "load winner", err)
			return
		}
		render(w, r, http.StatusOK, view.ClosedPage(username(r), d.Listing, d.Price, winner))
		return
	}
	render(w, r, http.StatusOK, view.DisplayPage(username(r), d, "", false))
}

// HandleClose ends the auction. Only the seller may do this.
// GET /close/{id}
func (h *ListingHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user := UserFromContext(r.Context())

	if _, err := h.closer.Close(r.Context(), user.ID, id); err != nil {
		handleServiceError(w, r, "close listing", err)
		return
	}

	h.metrics.ListingClosed()
	slog.Info("listing closed", "listing_id", id, "seller_id", user.ID)
	http.Redirect(w, r, displayPath(id), http.StatusSeeOther)
}
