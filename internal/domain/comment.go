package domain

import (
	"context"
	"time"
)

// Comment is a note left on a listing. Comments are never edited or deleted.
type Comment struct {
	ID         int64
	WriterID   int64
	WriterName string
	ListingID  int64
	Content    string
	CreatedAt  time.Time
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ListByListing returns comments newest first.
	ListByListing(ctx context.Context, listingID int64) ([]Comment, error)
}
