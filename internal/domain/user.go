package domain

import (
	"context"
	"time"
)

// GuestUserID identifies the shared guest identity. It never has a row in
// the users table.
const GuestUserID = "guest"

// DraftOwnerID is the placeholder owner of a project that only exists in a
// client's scratchpad.
const DraftOwnerID = "temp"

// User represents a registered user of the application.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsGuest reports whether u is the guest identity.
func (u *User) IsGuest() bool {
	return u != nil && u.ID == GuestUserID
}

// GuestUser returns the sentinel user for guest sessions.
func GuestUser() *User {
	return &User{
		ID:       GuestUserID,
		Email:    "guest@brandcraft.ai",
		Username: "Guest",
	}
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
