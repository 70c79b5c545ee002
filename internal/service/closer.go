package service

import (
	"context"
	"fmt"

	"github.com/msomdec/auction-house/internal/domain"
)

// AuctionCloser moves listings from open to closed. There is no way back.
type AuctionCloser struct {
	listings domain.ListingRepository
	bids     domain.BidRepository
}

// NewAuctionCloser creates a new AuctionCloser.
func NewAuctionCloser(listings domain.ListingRepository, bids domain.BidRepository) *AuctionCloser {
	return &AuctionCloser{listings: listings, bids: bids}
}

// Close marks the listing finished. Only the seller may close it; closing a
// closed listing again succeeds without changing anything.
func (c *AuctionCloser) Close(ctx context.Context, userID, listingID int64) (*domain.Listing, error) {
	listing, err := c.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != userID {
		return nil, fmt.Errorf("%w: only the seller can close this listing", domain.ErrForbidden)
	}

	if err := c.listings.MarkFinished(ctx, listingID); err != nil {
		return nil, fmt.Errorf("close listing: %w", err)
	}
	listing.Finished = true
	return listing, nil
}

// Winner returns the winning bid of a closed listing, or nil when the
// listing is still open or nobody bid.
func (c *AuctionCloser) Winner(ctx context.Context, listing *domain.Listing) (*domain.Bid, error) {
	if !listing.Finished {
		return nil, nil
	}
	return highestBid(ctx, c.bids, listing.ID)
}
