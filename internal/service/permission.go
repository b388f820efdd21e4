package service

import (
	"context"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Permission is the authorization cascade: site admin, then scope moderator
// with a named flag, then ownership. It is a pure query layer evaluated
// fresh on every call; nothing is cached.
type Permission struct {
	perms  model.PermissionStore
	logger *logger.Logger
}

func NewPermission(perms model.PermissionStore, logger *logger.Logger) *Permission {
	return &Permission{perms: perms, logger: logger}
}

// fandomScoped lists the blog-action flags a fandom-level grant reaches down
// into. A fandom moder with one of these acts on every blog of the fandom.
var fandomScoped = map[model.Flag]bool{
	model.FlagEditBlog:    true,
	model.FlagEditPost:    true,
	model.FlagEditComment: true,
}

// CanFandom reports whether principal may perform a fandom-scoped action
// requiring flag. An empty flag means "holds any grant".
func (p *Permission) CanFandom(ctx context.Context, principal, fandomID int64, flag model.Flag) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}

	admin, err := p.perms.IsAdmin(ctx, principal)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	if admin {
		return true, nil
	}

	return p.perms.IsFandomModer(ctx, principal, fandomID, flag)
}

// CanBlog reports whether principal may perform a blog-scoped action
// requiring flag. A fandom-level grant with the matching flag also passes
// for content flags; owner is NOT consulted here.
func (p *Permission) CanBlog(ctx context.Context, principal int64, blog model.Blog, flag model.Flag) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}

	admin, err := p.perms.IsAdmin(ctx, principal)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	if admin {
		return true, nil
	}

	moder, err := p.perms.IsBlogModer(ctx, principal, blog.ID, flag)
	if err != nil {
		return false, fmt.Errorf("failed to check blog moder: %w", err)
	}
	if moder {
		return true, nil
	}

	if fandomScoped[flag] {
		return p.perms.IsFandomModer(ctx, principal, blog.FandomID, flag)
	}
	return false, nil
}

// CanManageBlog reports whether principal may manage the blog itself: owner,
// blog moder with flag, matching fandom moder, or admin.
func (p *Permission) CanManageBlog(ctx context.Context, principal int64, blog model.Blog, flag model.Flag) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}
	if blog.Owner == principal {
		return true, nil
	}
	return p.CanBlog(ctx, principal, blog, flag)
}

// CanWriteInBlog reports whether principal may create content in the blog:
// authenticated and banned at neither the blog nor its fandom.
func (p *Permission) CanWriteInBlog(ctx context.Context, principal int64, blog model.Blog) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}

	banned, err := p.perms.IsBlogBanned(ctx, principal, blog.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check blog ban: %w", err)
	}
	if banned {
		return false, nil
	}

	banned, err = p.perms.IsFandomBanned(ctx, principal, blog.FandomID)
	if err != nil {
		return false, fmt.Errorf("failed to check fandom ban: %w", err)
	}
	return !banned, nil
}

// CanEditProfile reports whether principal may edit the target account:
// self or admin.
func (p *Permission) CanEditProfile(ctx context.Context, principal, targetID int64) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}
	if principal == targetID {
		return true, nil
	}
	return p.perms.IsAdmin(ctx, principal)
}

// IsAdmin exposes the admin check for callers that scope reads to admins.
func (p *Permission) IsAdmin(ctx context.Context, principal int64) (bool, error) {
	if principal == model.Anonymous {
		return false, nil
	}
	return p.perms.IsAdmin(ctx, principal)
}
