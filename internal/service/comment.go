package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/auction-house/internal/domain"
)

// CommentService appends comments to open listings.
type CommentService struct {
	comments domain.CommentRepository
	listings domain.ListingRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments domain.CommentRepository, listings domain.ListingRepository) *CommentService {
	return &CommentService{comments: comments, listings: listings}
}

// CheckOpen returns the listing if it still accepts comments.
func (s *CommentService) CheckOpen(ctx context.Context, listingID int64) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Finished {
		return nil, fmt.Errorf("%w: cannot comment on a closed listing", domain.ErrListingClosed)
	}
	return listing, nil
}

// Add stores a comment. The timestamp is assigned by the store.
func (s *CommentService) Add(ctx context.Context, writerID, listingID int64, content string) (*domain.Comment, error) {
	if _, err := s.CheckOpen(ctx, listingID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", domain.ErrInvalidInput)
	}

	comment := &domain.Comment{WriterID: writerID, ListingID: listingID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByListing returns a listing's comments, newest first.
func (s *CommentService) ListByListing(ctx context.Context, listingID int64) ([]domain.Comment, error) {
	return s.comments.ListByListing(ctx, listingID)
}
