package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/msomdec/auction-house/internal/domain"
)

func TestBidRepository_CreateIfHigher(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller")
	bidder := createUser(t, db, "bidder")
	listing := createListing(t, db, seller.ID, "Guitar", 1000)

	tests := []struct {
		name    string
		bidder  int64
		amount  domain.Money
		wantErr error
	}{
		{"equal to start bid", bidder.ID, 1000, domain.ErrBidTooLow},
		{"above start bid", bidder.ID, 1200, nil},
		{"equal to current bid", bidder.ID, 1200, domain.ErrBidTooLow},
		{"seller bidding", seller.ID, 5000, domain.ErrForbidden},
		{"higher bid", bidder.ID, 1201, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bid := &domain.Bid{BidderID: tc.bidder, ListingID: listing.ID, Amount: tc.amount}
			err := db.Bids().CreateIfHigher(ctx, bid)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && bid.ID == 0 {
				t.Fatal("expected bid ID to be set")
			}
		})
	}

	latest, err := db.Bids().Latest(ctx, listing.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Amount != 1201 || latest.BidderName != "bidder" {
		t.Fatalf("unexpected latest bid: %+v", latest)
	}
}

func TestBidRepository_CreateIfHigher_ClosedAndMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller")
	bidder := createUser(t, db, "bidder")
	listing := createListing(t, db, seller.ID, "Drum", 100)

	if err := db.Listings().MarkFinished(ctx, listing.ID); err != nil {
		t.Fatalf("MarkFinished: %v", err)
	}

	err := db.Bids().CreateIfHigher(ctx, &domain.Bid{BidderID: bidder.ID, ListingID: listing.ID, Amount: 500})
	if !errors.Is(err, domain.ErrListingClosed) {
		t.Fatalf("expected ErrListingClosed, got %v", err)
	}

	err = db.Bids().CreateIfHigher(ctx, &domain.Bid{BidderID: bidder.ID, ListingID: 9999, Amount: 500})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBidRepository_ConcurrentEqualBidsAcceptOnlyOne(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller")
	listing := createListing(t, db, seller.ID, "Painting", 1000)

	bidders := make([]*domain.User, 8)
	for i := range bidders {
		bidders[i] = createUser(t, db, "bidder"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(bidders))
	for _, b := range bidders {
		wg.Add(1)
		go func(bidderID int64) {
			defer wg.Done()
			errs <- db.Bids().CreateIfHigher(ctx, &domain.Bid{BidderID: bidderID, ListingID: listing.ID, Amount: 2000})
		}(b.ID)
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domain.ErrBidTooLow):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted bid, got %d", accepted)
	}
}

func TestBidRepository_LatestWithoutBids(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller")
	listing := createListing(t, db, seller.ID, "Book", 100)

	_, err := db.Bids().Latest(context.Background(), listing.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
