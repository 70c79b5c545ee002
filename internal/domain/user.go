package domain

import (
	"context"
	"time"
)

// MaxUsernameLength bounds the username column.
const MaxUsernameLength = 64

// User represents a registered user. The same identity acts as seller,
// bidder, watchlist owner and comment writer.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Delete removes the user together with everything they own.
	Delete(ctx context.Context, id int64) error
}
