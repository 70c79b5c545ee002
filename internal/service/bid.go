package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/auction-house/internal/domain"
)

// BidService validates and records bids.
type BidService struct {
	bids     domain.BidRepository
	listings domain.ListingRepository
}

// NewBidService creates a new BidService.
func NewBidService(bids domain.BidRepository, listings domain.ListingRepository) *BidService {
	return &BidService{bids: bids, listings: listings}
}

// CheckEligible reports whether the user may bid on the listing at all,
// before any amount is considered.
func (s *BidService) CheckEligible(ctx context.Context, bidderID, listingID int64) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Finished {
		return nil, fmt.Errorf("%w: cannot bid on a closed listing", domain.ErrListingClosed)
	}
	if listing.SellerID == bidderID {
		return nil, fmt.Errorf("%w: seller cannot place a bid", domain.ErrForbidden)
	}
	return listing, nil
}

// PlaceBid records a bid that strictly exceeds the listing's current price.
// The final check happens inside the insert, so two bids racing on the same
// price cannot both succeed.
func (s *BidService) PlaceBid(ctx context.Context, bidderID, listingID int64, amount string) (*domain.Bid, error) {
	listing, err := s.CheckEligible(ctx, bidderID, listingID)
	if err != nil {
		return nil, err
	}

	value, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, err
	}

	price, err := currentPrice(ctx, s.bids, listing)
	if err != nil {
		return nil, err
	}
	if value <= price {
		return nil, fmt.Errorf("%w (current bid is %s)", domain.ErrBidTooLow, price)
	}

	bid := &domain.Bid{BidderID: bidderID, ListingID: listingID, Amount: value}
	if err := s.bids.CreateIfHigher(ctx, bid); err != nil {
		switch {
		case errors.Is(err, domain.ErrBidTooLow),
			errors.Is(err, domain.ErrListingClosed),
			errors.Is(err, domain.ErrForbidden),
			errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		return nil, fmt.Errorf("record bid: %w", err)
	}
	return bid, nil
}

// HighestBidder returns the latest (and therefore highest) bid, or nil if the
// listing has none.
func (s *BidService) HighestBidder(ctx context.Context, listingID int64) (*domain.Bid, error) {
	return highestBid(ctx, s.bids, listingID)
}

// ListByListing returns a listing's bids, newest first.
func (s *BidService) ListByListing(ctx context.Context, listingID int64) ([]domain.Bid, error) {
	return s.bids.ListByListing(ctx, listingID)
}

// highestBid is the latest bid of a listing, or nil when there is none.
// Bids only ever rise, so the latest is also the highest.
func highestBid(ctx context.Context, bids domain.BidRepository, listingID int64) (*domain.Bid, error) {
	bid, err := bids.Latest(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest bid: %w", err)
	}
	return bid, nil
}
