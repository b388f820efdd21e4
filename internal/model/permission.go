package model

import "context"

// PermissionStore answers the existence queries the permission cascade is
// built from. Every check is evaluated fresh against the database; there
// is no cached authorization state.
type PermissionStore interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	// IsFandomModer reports whether a grant exists at the fandom scope.
	// An empty flag means "any grant"; otherwise the named flag must be
	// set true on the grant row.
	IsFandomModer(ctx context.Context, userID, fandomID int64, flag Flag) (bool, error)
	IsFandomBanned(ctx context.Context, userID, fandomID int64) (bool, error)
	IsBlogModer(ctx context.Context, userID, blogID int64, flag Flag) (bool, error)
	IsBlogBanned(ctx context.Context, userID, blogID int64) (bool, error)
	IsBlogOwner(ctx context.Context, userID, blogID int64) (bool, error)
}
