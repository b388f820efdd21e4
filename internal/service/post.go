package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Post exposes posts and their votes.
type Post struct {
	posts    model.PostStore
	resolver *Permission
	logger   *logger.Logger
}

func NewPost(posts model.PostStore, resolver *Permission, logger *logger.Logger) *Post {
	return &Post{posts: posts, resolver: resolver, logger: logger}
}

// GetByRef resolves a path reference. Posts are addressed by id only.
func (p *Post) GetByRef(ctx context.Context, ref model.Ref) (model.Post, error) {
	if ref.Kind != model.RefID {
		return model.Post{}, apierr.NewObjectNotFound()
	}

	post, err := p.posts.GetByID(ctx, ref.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, apierr.NewObjectNotFound()
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to resolve post: %w", err)
	}
	return post, nil
}

func (p *Post) List(ctx context.Context) ([]model.Post, error) {
	return p.posts.List(ctx)
}

func (p *Post) ListByBlog(ctx context.Context, blogID int64) ([]model.Post, error) {
	return p.posts.ListByBlog(ctx, blogID)
}

func (p *Post) ListByFandom(ctx context.Context, fandomID int64) ([]model.Post, error) {
	return p.posts.ListByFandom(ctx, fandomID)
}

// Create publishes a post in a blog. Requires an authenticated principal
// banned at neither the blog nor its fandom.
func (p *Post) Create(ctx context.Context, principal int64, blog model.Blog, title, content string) (int64, error) {
	ok, err := p.resolver.CanWriteInBlog(ctx, principal, blog)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apierr.NewForbidden()
	}

	id, err := p.posts.Create(ctx, principal, blog.ID, blog.FandomID, title, content)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	p.logger.Info("Post service: post created",
		"post_id", id,
		"blog_id", blog.ID,
		"owner", principal)

	return id, nil
}

// Update edits a post. Post owner, blog owner, blog or fandom moder with
// the edit flag, or admin.
func (p *Post) Update(ctx context.Context, principal int64, post model.Post, title, content string) error {
	ok, err := p.canEdit(ctx, principal, post)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := p.posts.Update(ctx, principal, post.ID, title, content); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	p.logger.Info("Post service: post updated",
		"post_id", post.ID,
		"edited_by", principal)

	return nil
}

func (p *Post) canEdit(ctx context.Context, principal int64, post model.Post) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}
	if post.Owner == principal {
		return true, nil
	}
	blog := model.Blog{ID: post.BlogID, FandomID: post.FandomID}
	ok, err := p.resolver.CanBlog(ctx, principal, blog, model.FlagEditPost)
	if err != nil || ok {
		return ok, err
	}
	return p.resolver.perms.IsBlogOwner(ctx, principal, post.BlogID)
}

// Votes lists the votes on a post. Admins see every vote; other callers see
// only their own.
func (p *Post) Votes(ctx context.Context, principal int64, post model.Post) ([]model.Vote, error) {
	votes, err := p.posts.ListVotes(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	admin, err := p.resolver.IsAdmin(ctx, principal)
	if err != nil {
		return nil, err
	}
	if admin {
		return votes, nil
	}

	own := votes[:0:0]
	for _, v := range votes {
		if v.UserID == principal {
			own = append(own, v)
		}
	}
	return own, nil
}

// Vote records an up or down vote, replacing any previous vote by the same
// caller.
func (p *Post) Vote(ctx context.Context, principal int64, post model.Post, up bool) error {
	blog := model.Blog{ID: post.BlogID, FandomID: post.FandomID}
	ok, err := p.resolver.CanWriteInBlog(ctx, principal, blog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := p.posts.SetVote(ctx, post.ID, principal, up); err != nil {
		return fmt.Errorf("failed to set vote: %w", err)
	}
	return nil
}
