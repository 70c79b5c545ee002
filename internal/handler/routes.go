package handler

import (
	"net/http"

	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/metrics"
	"github.com/msomdec/auction-house/internal/service"
)

// Deps bundles what the routes need.
type Deps struct {
	DB        domain.Database
	Auth      *service.AuthService
	Listings  *service.ListingService
	Bids      *service.BidService
	Watchlist *service.WatchlistService
	Comments  *service.CommentService
	Closer    *service.AuctionCloser
	Metrics   *metrics.Metrics
	// LoginLimiter throttles POST /login and POST /register. Nil disables it.
	LoginLimiter *service.TokenBucket
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	authH := NewAuthHandler(d.Auth, d.LoginLimiter, d.CookieSecure)
	listingH := NewListingHandler(d.Listings, d.Closer, d.Metrics)
	bidH := NewBidHandler(d.Bids, d.Listings, d.Metrics)
	watchH := NewWatchlistHandler(d.Watchlist, d.Metrics)
	commentH := NewCommentHandler(d.Comments, d.Listings, d.Metrics)

	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(d.Auth, h) }
	required := func(h http.HandlerFunc) http.Handler { return RequireAuth(d.Auth, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz(d.DB))
	mux.Handle("GET /metrics", d.Metrics.Handler())

	mux.HandleFunc("GET /login", authH.HandleLoginPage)
	mux.HandleFunc("POST /login", authH.HandleLogin)
	mux.HandleFunc("GET /logout", authH.HandleLogout)
	mux.HandleFunc("GET /register", authH.HandleRegisterPage)
	mux.HandleFunc("POST /register", authH.HandleRegister)
	mux.Handle("POST /account/delete", required(authH.HandleDeleteAccount))

	mux.Handle("GET /{$}", optional(listingH.HandleIndex))
	mux.Handle("GET /display/{id}", optional(listingH.HandleDisplay))
	mux.Handle("GET /create", required(listingH.HandleCreatePage))
	mux.Handle("POST /create", required(listingH.HandleCreate))
	mux.Handle("GET /sellinglist", required(listingH.HandleSellingList))
	mux.Handle("GET /close/{id}", required(listingH.HandleClose))

	mux.Handle("GET /placebid/{id}", required(bidH.HandleBidPage))
	mux.Handle("POST /placebid/{id}", required(bidH.HandlePlaceBid))

	mux.Handle("GET /watchlist", required(watchH.HandleWatchlist))
	mux.Handle("GET /changewl/{id}", required(watchH.HandleToggle))
	mux.Handle("POST /changewl/{id}", required(watchH.HandleToggle))

	mux.Handle("GET /comment/{id}", required(commentH.HandleCommentPage))
	mux.Handle("POST /comment/{id}", required(commentH.HandleAddComment))

	mux.Handle("/", optional(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, http.StatusNotFound)
	}))
}

// Wrap applies the middleware every route shares.
func Wrap(m *metrics.Metrics, h http.Handler) http.Handler {
	return RequestID(AccessLog(m, SecurityHeaders(h)))
}
