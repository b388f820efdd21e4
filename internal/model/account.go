package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	// GetCredentials looks an account up by case-insensitive username and
	// returns its id, password hash and current revocation nonce.
	GetCredentials(ctx context.Context, username string) (Credentials, error)
	GetCredentialsByID(ctx context.Context, id int64) (Credentials, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	// Create inserts a new account and returns its server-assigned id.
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	// RotateNonce regenerates the revocation nonce, invalidating every
	// refresh token minted with the previous one.
	RotateNonce(ctx context.Context, id int64) error
	SetPassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, editedBy, id int64, description, avatar string) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Account represents a stored account with its public profile fields.
type Account struct {
	ID          int64
	Username    string
	Description string
	Avatar      string
	CreatedAt   time.Time
	EditedAt    *time.Time
	EditedBy    *int64
}

// Credentials is the authentication material for one account.
type Credentials struct {
	ID           int64
	PasswordHash string
	Nonce        uuid.UUID
}
