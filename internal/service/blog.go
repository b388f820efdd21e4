package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Blog exposes the sub-blogs of fandoms.
type Blog struct {
	blogs    model.BlogStore
	perms    model.PermissionStore
	resolver *Permission
	logger   *logger.Logger
}

func NewBlog(blogs model.BlogStore, perms model.PermissionStore, resolver *Permission, logger *logger.Logger) *Blog {
	return &Blog{blogs: blogs, perms: perms, resolver: resolver, logger: logger}
}

// GetByRef resolves a path reference. URL references only make sense inside
// a fandom (blog urls are unique per fandom, not globally); an id reference
// scoped to a fandom must belong to it.
func (b *Blog) GetByRef(ctx context.Context, fandomID int64, ref model.Ref) (model.Blog, error) {
	var (
		blog model.Blog
		err  error
	)

	switch {
	case ref.Kind == model.RefSlug && fandomID != 0:
		blog, err = b.blogs.GetByURL(ctx, fandomID, ref.Slug)
	case ref.Kind == model.RefID:
		blog, err = b.blogs.GetByID(ctx, ref.ID)
		if err == nil && fandomID != 0 && blog.FandomID != fandomID {
			err = model.ErrNotFound
		}
	default:
		return model.Blog{}, apierr.NewObjectNotFound()
	}

	if errors.Is(err, model.ErrNotFound) {
		return model.Blog{}, apierr.NewObjectNotFound()
	}
	if err != nil {
		return model.Blog{}, fmt.Errorf("failed to resolve blog: %w", err)
	}
	return blog, nil
}

func (b *Blog) List(ctx context.Context) ([]model.Blog, error) {
	return b.blogs.List(ctx)
}

func (b *Blog) ListByFandom(ctx context.Context, fandomID int64) ([]model.Blog, error) {
	return b.blogs.ListByFandom(ctx, fandomID)
}

// Create opens a blog in a fandom. Any authenticated user not banned at the
// fandom may do that; the creator becomes the owner.
func (b *Blog) Create(ctx context.Context, principal int64, fandom model.Fandom, url, title, description, avatar string) (int64, error) {
	if principal == model.Anonymous {
		return 0, apierr.NewForbidden()
	}

	banned, err := b.perms.IsFandomBanned(ctx, principal, fandom.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to check fandom ban: %w", err)
	}
	if banned {
		return 0, apierr.NewForbidden()
	}

	id, err := b.blogs.Create(ctx, principal, fandom.ID, url, title, description, avatar)
	if errors.Is(err, model.ErrConflict) {
		return 0, apierr.NewBlogURLAlreadyTaken()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create blog: %w", err)
	}

	b.logger.Info("Blog service: blog created",
		"blog_id", id,
		"fandom_id", fandom.ID,
		"owner", principal)

	return id, nil
}

// Update edits a blog. Owner, blog moder with the edit flag, fandom moder
// with the edit flag, or admin.
func (b *Blog) Update(ctx context.Context, principal int64, blog model.Blog, title, description, avatar string) error {
	ok, err := b.resolver.CanManageBlog(ctx, principal, blog, model.FlagEditBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := b.blogs.Update(ctx, principal, blog.ID, title, description, avatar); err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	b.logger.Info("Blog service: blog updated",
		"blog_id", blog.ID,
		"edited_by", principal)

	return nil
}
