package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/auction-house/internal/domain"
)

// ListingService handles listing creation and reads.
type ListingService struct {
	listings  domain.ListingRepository
	bids      domain.BidRepository
	comments  domain.CommentRepository
	watchlist domain.WatchlistRepository
}

// NewListingService creates a new ListingService.
func NewListingService(listings domain.ListingRepository, bids domain.BidRepository, comments domain.CommentRepository, watchlist domain.WatchlistRepository) *ListingService {
	return &ListingService{listings: listings, bids: bids, comments: comments, watchlist: watchlist}
}

// ListingDetail is everything the listing page shows.
type ListingDetail struct {
	Listing  *domain.Listing
	Price    domain.Money
	Bids     []domain.Bid     // newest first
	Comments []domain.Comment // newest first
	Watching bool
	Owner    bool
}

// Create validates and stores a new open listing for the seller.
func (s *ListingService) Create(ctx context.Context, sellerID int64, title, description, startBid string) (*domain.Listing, error) {
	if sellerID == 0 {
		return nil, domain.ErrUnauthorized
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: title must be %d characters or fewer", domain.ErrInvalidInput, domain.MaxTitleLength)
	}

	price, err := domain.ParseMoney(startBid)
	if err != nil {
		return nil, fmt.Errorf("starting bid: %w", err)
	}

	listing := &domain.Listing{
		SellerID:    sellerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		StartBid:    price,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// GetByID returns a listing, or ErrNotFound.
func (s *ListingService) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

// CurrentPrice returns the latest bid amount, or the starting bid when no
// bids exist.
func (s *ListingService) CurrentPrice(ctx context.Context, listing *domain.Listing) (domain.Money, error) {
	return currentPrice(ctx, s.bids, listing)
}

// List returns every listing, open or closed.
func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.List(ctx)
}

// ListBySeller returns the listings a user is selling.
func (s *ListingService) ListBySeller(ctx context.Context, sellerID int64) ([]domain.Listing, error) {
	return s.listings.ListBySeller(ctx, sellerID)
}

// Detail loads a listing with its bids, comments and the viewer's relation to
// it. viewerID is zero for anonymous visitors.
func (s *ListingService) Detail(ctx context.Context, viewerID, id int64) (*ListingDetail, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bids, err := s.bids.ListByListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	comments, err := s.comments.ListByListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	price, err := currentPrice(ctx, s.bids, listing)
	if err != nil {
		return nil, err
	}

	d := &ListingDetail{
		Listing:  listing,
		Price:    price,
		Bids:     bids,
		Comments: comments,
		Owner:    viewerID != 0 && viewerID == listing.SellerID,
	}

	if viewerID != 0 {
		d.Watching, err = s.watchlist.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("check watchlist: %w", err)
		}
	}

	return d, nil
}

func currentPrice(ctx context.Context, bids domain.BidRepository, listing *domain.Listing) (domain.Money, error) {
	top, err := highestBid(ctx, bids, listing.ID)
	if err != nil {
		return 0, err
	}
	if top == nil {
		return listing.StartBid, nil
	}
	return top.Amount, nil
}
