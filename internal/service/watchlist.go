package service

import (
	"context"
	"fmt"

	"github.com/msomdec/auction-house/internal/domain"
)

// WatchlistService manages per-user saved listings.
type WatchlistService struct {
	watchlist domain.WatchlistRepository
	listings  domain.ListingRepository
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(watchlist domain.WatchlistRepository, listings domain.ListingRepository) *WatchlistService {
	return &WatchlistService{watchlist: watchlist, listings: listings}
}

// Toggle adds the listing to the user's watchlist, or removes it if it is
// already there. It reports whether the user is watching afterwards.
func (s *WatchlistService) Toggle(ctx context.Context, userID, listingID int64) (bool, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return false, err
	}

	watching, err := s.watchlist.Exists(ctx, userID, listingID)
	if err != nil {
		return false, err
	}

	if watching {
		if err := s.watchlist.Remove(ctx, userID, listingID); err != nil {
			return false, fmt.Errorf("unwatch listing: %w", err)
		}
		return false, nil
	}

	if err := s.watchlist.Add(ctx, userID, listingID); err != nil {
		return false, fmt.Errorf("watch listing: %w", err)
	}
	return true, nil
}

// IsWatching reports whether the listing is on the user's watchlist.
func (s *WatchlistService) IsWatching(ctx context.Context, userID, listingID int64) (bool, error) {
	return s.watchlist.Exists(ctx, userID, listingID)
}

// List returns the listings on the user's watchlist.
func (s *WatchlistService) List(ctx context.Context, userID int64) ([]domain.Listing, error) {
	return s.listings.ListWatchedBy(ctx, userID)
}
