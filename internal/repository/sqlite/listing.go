package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/auction-house/internal/domain"
)

// listingRepo implements domain.ListingRepository using SQLite.
type listingRepo struct {
	db *sql.DB
}

// listingColumns selects a listing with its seller's name and its current
// price: the latest bid, falling back to the starting bid.
const listingColumns = `
	l.id, l.seller_id, u.username, l.title, l.description, l.start_bid, l.finished, l.created_at,
	COALESCE((SELECT b.amount FROM bids b WHERE b.listing_id = l.id ORDER BY b.id DESC LIMIT 1), l.start_bid)`

func (r *listingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (seller_id, title, description, start_bid, finished, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		listing.SellerID, listing.Title, listing.Description, listing.StartBid, now,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get listing id: %w", err)
	}

	listing.ID = id
	listing.Finished = false
	listing.CreatedAt = now
	listing.CurrentPrice = listing.StartBid
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+`
		 FROM listings l JOIN users u ON u.id = l.seller_id
		 WHERE l.id = ?`, id)

	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *listingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	return r.query(ctx, "list listings",
		`SELECT `+listingColumns+`
		 FROM listings l JOIN users u ON u.id = l.seller_id
		 ORDER BY l.id DESC`)
}

func (r *listingRepo) ListBySeller(ctx context.Context, sellerID int64) ([]domain.Listing, error) {
	return r.query(ctx, "list listings by seller",
		`SELECT `+listingColumns+`
		 FROM listings l JOIN users u ON u.id = l.seller_id
		 WHERE l.seller_id = ?
		 ORDER BY l.id DESC`, sellerID)
}

func (r *listingRepo) ListWatchedBy(ctx context.Context, userID int64) ([]domain.Listing, error) {
	return r.query(ctx, "list watched listings",
		`SELECT `+listingColumns+`
		 FROM watchlist w
		 JOIN listings l ON l.id = w.listing_id
		 JOIN users u ON u.id = l.seller_id
		 WHERE w.user_id = ?
		 ORDER BY w.created_at DESC, l.id DESC`, userID)
}

// MarkFinished closes a listing. Closing an already closed listing is a no-op.
func (r *listingRepo) MarkFinished(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE listings SET finished = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("close listing: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listingRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := s.Scan(&l.ID, &l.SellerID, &l.SellerName, &l.Title, &l.Description,
		&l.StartBid, &l.Finished, &l.CreatedAt, &l.CurrentPrice)
	if err != nil {
		return nil, err
	}
	return l, nil
}
