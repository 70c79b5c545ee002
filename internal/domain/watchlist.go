package domain

import "context"

// WatchlistRepository stores (user, listing) membership pairs.
type WatchlistRepository interface {
	Exists(ctx context.Context, userID, listingID int64) (bool, error)
	Add(ctx context.Context, userID, listingID int64) error
	Remove(ctx context.Context, userID, listingID int64) error
}
