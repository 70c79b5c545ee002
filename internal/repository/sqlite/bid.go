package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/auction-house/internal/domain"
)

// BidRepository implements domain.BidRepository using SQLite.
type BidRepository struct {
	db *sql.DB
}

// NewBidRepository creates a new SQLite-backed BidRepository.
func NewBidRepository(db *DB) *BidRepository {
	return &BidRepository{db: db.SqlDB}
}

// CreateIfHigher inserts a bid with a single INSERT ... SELECT so the price
// check and the insert cannot interleave with another bid on the same listing.
func (r *BidRepository) CreateIfHigher(ctx context.Context, bid *domain.Bid) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO bids (bidder_id, listing_id, amount, created_at)
		 SELECT ?, l.id, ?, ?
		 FROM listings l
		 WHERE l.id = ?
		   AND l.finished = 0
		   AND l.seller_id <> ?
		   AND ? > COALESCE(
		         (SELECT b.amount FROM bids b WHERE b.listing_id = l.id ORDER BY b.id DESC LIMIT 1),
		         l.start_bid)`,
		bid.BidderID, bid.Amount, now, bid.ListingID, bid.BidderID, bid.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return r.rejection(ctx, bid)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get bid id: %w", err)
	}
	bid.ID = id
	bid.CreatedAt = now
	return nil
}

// rejection explains why CreateIfHigher inserted nothing.
func (r *BidRepository) rejection(ctx context.Context, bid *domain.Bid) error {
	var sellerID int64
	var finished bool
	err := r.db.QueryRowContext(ctx,
		"SELECT seller_id, finished FROM listings WHERE id = ?", bid.ListingID,
	).Scan(&sellerID, &finished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("check listing: %w", err)
	}

	switch {
	case finished:
		return domain.ErrListingClosed
	case sellerID == bid.BidderID:
		return domain.ErrForbidden
	default:
		return domain.ErrBidTooLow
	}
}

func (r *BidRepository) Latest(ctx context.Context, listingID int64) (*domain.Bid, error) {
	b := &domain.Bid{}
	err := r.db.QueryRowContext(ctx,
		`SELECT b.id, b.bidder_id, u.username, b.listing_id, b.amount, b.created_at
		 FROM bids b JOIN users u ON u.id = b.bidder_id
		 WHERE b.listing_id = ?
		 ORDER BY b.id DESC LIMIT 1`, listingID,
	).Scan(&b.ID, &b.BidderID, &b.BidderName, &b.ListingID, &b.Amount, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get latest bid: %w", err)
	}
	return b, nil
}

func (r *BidRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.bidder_id, u.username, b.listing_id, b.amount, b.created_at
		 FROM bids b JOIN users u ON u.id = b.bidder_id
		 WHERE b.listing_id = ?
		 ORDER BY b.id DESC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(&b.ID, &b.BidderID, &b.BidderName, &b.ListingID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}
