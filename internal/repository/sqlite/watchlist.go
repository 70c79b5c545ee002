package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type watchlistRepo struct {
	db *sql.DB
}

func (r *watchlistRepo) Exists(ctx context.Context, userID, listingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = ? AND listing_id = ?)",
		userID, listingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return exists, nil
}

// Add inserts the pair; adding a pair that is already present does nothing.
func (r *watchlistRepo) Add(ctx context.Context, userID, listingID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO watchlist (user_id, listing_id, created_at) VALUES (?, ?, ?)",
		userID, listingID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

func (r *watchlistRepo) Remove(ctx context.Context, userID, listingID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM watchlist WHERE user_id = ? AND listing_id = ?",
		userID, listingID,
	)
	if err != nil {
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	return nil
}
