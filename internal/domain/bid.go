package domain

import (
	"context"
	"time"
)

// Bid is an offer against a listing. Bids are append-only and each accepted
// bid exceeds the one before it, so the latest bid is also the highest.
type Bid struct {
	ID         int64
	BidderID   int64
	BidderName string
	ListingID  int64
	Amount     Money
	CreatedAt  time.Time
}

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	// CreateIfHigher inserts the bid only if the listing is open, the bidder
	// is not its seller and the amount exceeds the current price, all in a
	// single statement. It returns ErrNotFound, ErrListingClosed,
	// ErrForbidden or ErrBidTooLow when nothing was inserted.
	CreateIfHigher(ctx context.Context, bid *Bid) error
	// Latest returns the most recent bid for a listing, or ErrNotFound.
	Latest(ctx context.Context, listingID int64) (*Bid, error)
	// ListByListing returns bids newest first.
	ListByListing(ctx context.Context, listingID int64) ([]Bid, error)
}
