package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Comment exposes comments, their answer threads and votes.
type Comment struct {
	comments model.CommentStore
	resolver *Permission
	logger   *logger.Logger
}

func NewComment(comments model.CommentStore, resolver *Permission, logger *logger.Logger) *Comment {
	return &Comment{comments: comments, resolver: resolver, logger: logger}
}

// GetByRef resolves a path reference. Comments are addressed by id only.
func (c *Comment) GetByRef(ctx context.Context, ref model.Ref) (model.Comment, error) {
	if ref.Kind != model.RefID {
		return model.Comment{}, apierr.NewObjectNotFound()
	}

	comment, err := c.comments.GetByID(ctx, ref.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Comment{}, apierr.NewObjectNotFound()
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to resolve comment: %w", err)
	}
	return comment, nil
}

// List narrows by the most specific non-zero scope: post, blog, fandom,
// then everything.
func (c *Comment) List(ctx context.Context, postID, blogID, fandomID int64) ([]model.Comment, error) {
	return c.comments.List(ctx, postID, blogID, fandomID)
}

func (c *Comment) ListAnswers(ctx context.Context, parentID int64) ([]model.Comment, error) {
	return c.comments.ListAnswers(ctx, parentID)
}

// Create adds a top-level comment to a post.
func (c *Comment) Create(ctx context.Context, principal int64, post model.Post, content string) (int64, error) {
	return c.create(ctx, principal, post.ID, post.BlogID, post.FandomID, 0, content)
}

// CreateAnswer adds a reply under an existing comment, inheriting its scope
// chain.
func (c *Comment) CreateAnswer(ctx context.Context, principal int64, parent model.Comment, content string) (int64, error) {
	return c.create(ctx, principal, parent.PostID, parent.BlogID, parent.FandomID, parent.ID, content)
}

func (c *Comment) create(ctx context.Context, principal, postID, blogID, fandomID, parentID int64, content string) (int64, error) {
	blog := model.Blog{ID: blogID, FandomID: fandomID}
	ok, err := c.resolver.CanWriteInBlog(ctx, principal, blog)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apierr.NewForbidden()
	}

	id, err := c.comments.Create(ctx, principal, postID, blogID, fandomID, parentID, content)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	c.logger.Info("Comment service: comment created",
		"comment_id", id,
		"post_id", postID,
		"owner", principal)

	return id, nil
}

// Update edits a comment. Comment owner, blog owner, blog or fandom moder
// with the edit flag, or admin.
func (c *Comment) Update(ctx context.Context, principal int64, comment model.Comment, content string) error {
	ok, err := c.canEdit(ctx, principal, comment)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := c.comments.Update(ctx, principal, comment.ID, content); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	c.logger.Info("Comment service: comment updated",
		"comment_id", comment.ID,
		"edited_by", principal)

	return nil
}

func (c *Comment) canEdit(ctx context.Context, principal int64, comment model.Comment) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}
	if comment.Owner == principal {
		return true, nil
	}
	blog := model.Blog{ID: comment.BlogID, FandomID: comment.FandomID}
	ok, err := c.resolver.CanBlog(ctx, principal, blog, model.FlagEditComment)
	if err != nil || ok {
		return ok, err
	}
	return c.resolver.perms.IsBlogOwner(ctx, principal, comment.BlogID)
}

// Votes lists the votes on a comment. Admins see every vote; other callers
// see only their own.
func (c *Comment) Votes(ctx context.Context, principal int64, comment model.Comment) ([]model.Vote, error) {
	votes, err := c.comments.ListVotes(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	admin, err := c.resolver.IsAdmin(ctx, principal)
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
func (c *Comment) Vote(ctx context.Context, principal int64, comment model.Comment, up bool) error {
	blog := model.Blog{ID: comment.BlogID, FandomID: comment.FandomID}
	ok, err := c.resolver.CanWriteInBlog(ctx, principal, blog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := c.comments.SetVote(ctx, comment.ID, principal, up); err != nil {
		return fmt.Errorf("failed to set vote: %w", err)
	}
	return nil
}
