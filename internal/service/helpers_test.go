package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/repository/sqlite"
	"github.com/msomdec/auction-house/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

type testEnv struct {
	db        *sqlite.DB
	auth      *service.AuthService
	listings  *service.ListingService
	bids      *service.BidService
	watchlist *service.WatchlistService
	comments  *service.CommentService
	closer    *service.AuctionCloser
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	return &testEnv{
		db: db,
		// Use cost 4 for fast tests.
		auth:      service.NewAuthService(db.Users(), testJWTSecret, 4),
		listings:  service.NewListingService(db.Listings(), db.Bids(), db.Comments(), db.Watchlist()),
		bids:      service.NewBidService(db.Bids(), db.Listings()),
		watchlist: service.NewWatchlistService(db.Watchlist(), db.Listings()),
		comments:  service.NewCommentService(db.Comments(), db.Listings()),
		closer:    service.NewAuctionCloser(db.Listings(), db.Bids()),
	}
}

func (e *testEnv) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), username, username+"@example.com", "password123", "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return u
}

func (e *testEnv) listing(t *testing.T, sellerID int64, startBid string) *domain.Listing {
	t.Helper()
	l, err := e.listings.Create(context.Background(), sellerID, "Listing", "A thing for sale", startBid)
	if err != nil {
		t.Fatalf("Create listing: %v", err)
	}
	return l
}
