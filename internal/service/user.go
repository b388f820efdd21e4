package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// User exposes account profiles and the content listings under them.
type User struct {
	accounts model.AccountStore
	blogs    model.BlogStore
	posts    model.PostStore
	comments model.CommentStore
	resolver *Permission
	storage  model.Storage
	logger   *logger.Logger
}

func NewUser(accounts model.AccountStore, blogs model.BlogStore, posts model.PostStore, comments model.CommentStore, resolver *Permission, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		accounts: accounts,
		blogs:    blogs,
		posts:    posts,
		comments: comments,
		resolver: resolver,
		storage:  storage,
		logger:   logger,
	}
}

// GetByRef resolves a path reference to an account. "current" resolves to
// the principal and is Forbidden for anonymous callers.
func (u *User) GetByRef(ctx context.Context, principal int64, ref model.Ref) (model.Account, error) {
	var (
		account model.Account
		err     error
	)

	switch ref.Kind {
	case model.RefCurrent:
		if principal == model.Anonymous {
			return model.Account{}, apierr.NewForbidden()
		}
		account, err = u.accounts.GetByID(ctx, principal)
	case model.RefSlug:
		account, err = u.accounts.GetByUsername(ctx, ref.Slug)
	default:
		account, err = u.accounts.GetByID(ctx, ref.ID)
	}

	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierr.NewObjectNotFound()
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to resolve account: %w", err)
	}
	return account, nil
}

func (u *User) List(ctx context.Context) ([]model.Account, error) {
	return u.accounts.List(ctx)
}

// UpdateProfile edits the target account's profile. Only the account itself
// or an admin may do that.
func (u *User) UpdateProfile(ctx context.Context, principal, targetID int64, description, avatar string) error {
	ok, err := u.resolver.CanEditProfile(ctx, principal, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := u.accounts.UpdateProfile(ctx, principal, targetID, description, avatar); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	u.logger.Info("User service: profile updated",
		"user_id", targetID,
		"edited_by", principal)

	return nil
}

// UploadAvatar stores an avatar image for the target account and points the
// profile at it. Returns the stored object key.
func (u *User) UploadAvatar(ctx context.Context, principal, targetID int64, reader io.Reader) (string, error) {
	ok, err := u.resolver.CanEditProfile(ctx, principal, targetID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apierr.NewForbidden()
	}

	account, err := u.accounts.GetByID(ctx, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierr.NewObjectNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get account: %w", err)
	}

	key := fmt.Sprintf("avatars/users/%d", targetID)
	if err := u.storage.Upload(ctx, key, reader); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := u.accounts.UpdateProfile(ctx, principal, targetID, account.Description, key); err != nil {
		return "", fmt.Errorf("failed to update profile: %w", err)
	}

	u.logger.Info("User service: avatar uploaded",
		"user_id", targetID,
		"key", key)

	return key, nil
}

// DownloadAvatar streams the stored avatar object for an account.
func (u *User) DownloadAvatar(ctx context.Context, targetID int64) (io.ReadCloser, error) {
	key := fmt.Sprintf("avatars/users/%d", targetID)

	exists, err := u.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check avatar: %w", err)
	}
	if !exists {
		return nil, apierr.NewObjectNotFound()
	}

	return u.storage.Download(ctx, key)
}

func (u *User) Blogs(ctx context.Context, userID int64) ([]model.Blog, error) {
	return u.blogs.ListByOwner(ctx, userID)
}

func (u *User) Posts(ctx context.Context, userID int64) ([]model.Post, error) {
	return u.posts.ListByOwner(ctx, userID)
}

func (u *User) Comments(ctx context.Context, userID int64) ([]model.Comment, error) {
	return u.comments.ListByOwner(ctx, userID)
}
