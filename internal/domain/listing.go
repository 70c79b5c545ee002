package domain

import (
	"context"
	"time"
)

// MaxTitleLength bounds the listing title column.
const MaxTitleLength = 200

// Listing is an item up for auction. It starts open and can only move to
// finished, by its seller.
type Listing struct {
	ID          int64
	SellerID    int64
	SellerName  string
	Title       string
	Description string
	StartBid    Money
	Finished    bool
	CreatedAt   time.Time

	// CurrentPrice is derived on list reads: the latest bid, or StartBid.
	CurrentPrice Money
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id int64) (*Listing, error)
	List(ctx context.Context) ([]Listing, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]Listing, error)
	ListWatchedBy(ctx context.Context, userID int64) ([]Listing, error)
	MarkFinished(ctx context.Context, id int64) error
}
