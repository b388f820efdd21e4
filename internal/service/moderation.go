package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Moderation manages grants and bans at both scopes. Every insert runs the
// mutual-exclusion pre-checks and still treats the store's ErrConflict as
// the authoritative answer, so a race between the check and the insert
// cannot violate the invariant.
type Moderation struct {
	moders   model.ModerationStore
	perms    model.PermissionStore
	accounts model.AccountStore
	resolver *Permission
	logger   *logger.Logger
}

func NewModeration(moders model.ModerationStore, perms model.PermissionStore, accounts model.AccountStore, resolver *Permission, logger *logger.Logger) *Moderation {
	return &Moderation{
		moders:   moders,
		perms:    perms,
		accounts: accounts,
		resolver: resolver,
		logger:   logger,
	}
}

// targetExists maps a missing target account to ObjectNotFound.
func (m *Moderation) targetExists(ctx context.Context, userID int64) error {
	exists, err := m.accounts.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check target account: %w", err)
	}
	if !exists {
		return apierr.NewObjectNotFound()
	}
	return nil
}

// Fandom scope.

func (m *Moderation) ListFandomModers(ctx context.Context, fandomID int64) ([]model.FandomModer, error) {
	return m.moders.ListFandomModers(ctx, fandomID)
}

func (m *Moderation) GetFandomModer(ctx context.Context, fandomID, userID int64) (model.FandomModer, error) {
	moder, err := m.moders.GetFandomModer(ctx, fandomID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.FandomModer{}, apierr.NewObjectNotFound()
	}
	return moder, err
}

func (m *Moderation) GrantFandomModer(ctx context.Context, principal, fandomID, targetID int64, flags model.FandomModerFlags) error {
	ok, err := m.resolver.CanFandom(ctx, principal, fandomID, model.FlagManageFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := m.targetExists(ctx, targetID); err != nil {
		return err
	}

	banned, err := m.perms.IsFandomBanned(ctx, targetID, fandomID)
	if err != nil {
		return fmt.Errorf("failed to check target ban: %w", err)
	}
	if banned {
		return apierr.NewUserIsBanned()
	}

	err = m.moders.InsertFandomModer(ctx, model.FandomModer{
		UserID:   targetID,
		FandomID: fandomID,
		SetBy:    principal,
		Flags:    flags,
	})
	if errors.Is(err, model.ErrConflict) {
		return apierr.NewUserIsModer()
	}
	if err != nil {
		return fmt.Errorf("failed to insert fandom moder: %w", err)
	}

	m.logger.Info("Moderation service: fandom moder granted",
		"fandom_id", fandomID,
		"user_id", targetID,
		"set_by", principal)

	return nil
}

func (m *Moderation) UpdateFandomModer(ctx context.Context, principal, fandomID, targetID int64, flags model.FandomModerFlags) error {
	ok, err := m.resolver.CanFandom(ctx, principal, fandomID, model.FlagManageFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if _, err := m.GetFandomModer(ctx, fandomID, targetID); err != nil {
		return err
	}

	return m.moders.UpdateFandomModer(ctx, model.FandomModer{
		UserID:   targetID,
		FandomID: fandomID,
		SetBy:    principal,
		Flags:    flags,
	})
}

func (m *Moderation) RevokeFandomModer(ctx context.Context, principal, fandomID, targetID int64) error {
	ok, err := m.resolver.CanFandom(ctx, principal, fandomID, model.FlagManageFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}
	return m.moders.DeleteFandomModer(ctx, fandomID, targetID)
}

func (m *Moderation) ListFandomBans(ctx context.Context, fandomID int64) ([]model.Ban, error) {
	return m.moders.ListFandomBans(ctx, fandomID)
}

func (m *Moderation) GetFandomBan(ctx context.Context, fandomID, userID int64) (model.Ban, error) {
	ban, err := m.moders.GetFandomBan(ctx, fandomID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Ban{}, apierr.NewObjectNotFound()
	}
	return ban, err
}

func (m *Moderation) BanAtFandom(ctx context.Context, principal, fandomID, targetID int64, reason string) error {
	ok, err := m.resolver.CanFandom(ctx, principal, fandomID, model.FlagBanFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := m.targetExists(ctx, targetID); err != nil {
		return err
	}

	moder, err := m.perms.IsFandomModer(ctx, targetID, fandomID, "")
	if err != nil {
		return fmt.Errorf("failed to check target grant: %w", err)
	}
	if moder {
		return apierr.NewUserIsModer()
	}

	err = m.moders.InsertFandomBan(ctx, model.Ban{
		UserID:   targetID,
		TargetID: fandomID,
		SetBy:    principal,
		Reason:   reason,
	})
	if errors.Is(err, model.ErrConflict) {
		return apierr.NewUserIsBanned()
	}
	if err != nil {
		return fmt.Errorf("failed to insert fandom ban: %w", err)
	}

	m.logger.Info("Moderation service: user banned at fandom",
		"fandom_id", fandomID,
		"user_id", targetID,
		"set_by", principal)

	return nil
}

func (m *Moderation) UnbanAtFandom(ctx context.Context, principal, fandomID, targetID int64) error {
	ok, err := m.resolver.CanFandom(ctx, principal, fandomID, model.FlagBanFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}
	return m.moders.DeleteFandomBan(ctx, fandomID, targetID)
}

// Blog scope. Callers pass the resolved blog so the checks can reach the
// parent fandom and the owner.

func (m *Moderation) ListBlogModers(ctx context.Context, blogID int64) ([]model.BlogModer, error) {
	return m.moders.ListBlogModers(ctx, blogID)
}

func (m *Moderation) GetBlogModer(ctx context.Context, blogID, userID int64) (model.BlogModer, error) {
	moder, err := m.moders.GetBlogModer(ctx, blogID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.BlogModer{}, apierr.NewObjectNotFound()
	}
	return moder, err
}

func (m *Moderation) GrantBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64, flags model.BlogModerFlags) error {
	ok, err := m.resolver.CanManageBlog(ctx, principal, blog, model.FlagManageBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := m.targetExists(ctx, targetID); err != nil {
		return err
	}

	if targetID == blog.Owner {
		return apierr.NewUserIsOwner()
	}

	banned, err := m.perms.IsBlogBanned(ctx, targetID, blog.ID)
	if err != nil {
		return fmt.Errorf("failed to check target blog ban: %w", err)
	}
	if !banned {
		banned, err = m.perms.IsFandomBanned(ctx, targetID, blog.FandomID)
		if err != nil {
			return fmt.Errorf("failed to check target fandom ban: %w", err)
		}
	}
	if banned {
		return apierr.NewUserIsBanned()
	}

	err = m.moders.InsertBlogModer(ctx, model.BlogModer{
		UserID: targetID,
		BlogID: blog.ID,
		SetBy:  principal,
		Flags:  flags,
	})
	if errors.Is(err, model.ErrConflict) {
		return apierr.NewUserIsModer()
	}
	if err != nil {
		return fmt.Errorf("failed to insert blog moder: %w", err)
	}

	m.logger.Info("Moderation service: blog moder granted",
		"blog_id", blog.ID,
		"user_id", targetID,
		"set_by", principal)

	return nil
}

func (m *Moderation) UpdateBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64, flags model.BlogModerFlags) error {
	ok, err := m.resolver.CanManageBlog(ctx, principal, blog, model.FlagManageBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if _, err := m.GetBlogModer(ctx, blog.ID, targetID); err != nil {
		return err
	}

	return m.moders.UpdateBlogModer(ctx, model.BlogModer{
		UserID: targetID,
		BlogID: blog.ID,
		SetBy:  principal,
		Flags:  flags,
	})
}

func (m *Moderation) RevokeBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64) error {
	ok, err := m.resolver.CanManageBlog(ctx, principal, blog, model.FlagManageBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}
	return m.moders.DeleteBlogModer(ctx, blog.ID, targetID)
}

func (m *Moderation) ListBlogBans(ctx context.Context, blogID int64) ([]model.Ban, error) {
	return m.moders.ListBlogBans(ctx, blogID)
}

func (m *Moderation) GetBlogBan(ctx context.Context, blogID, userID int64) (model.Ban, error) {
	ban, err := m.moders.GetBlogBan(ctx, blogID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Ban{}, apierr.NewObjectNotFound()
	}
	return ban, err
}

func (m *Moderation) BanAtBlog(ctx context.Context, principal int64, blog model.Blog, targetID int64, reason string) error {
	ok, err := m.resolver.CanManageBlog(ctx, principal, blog, model.FlagBanBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := m.targetExists(ctx, targetID); err != nil {
		return err
	}

	if targetID == blog.Owner {
		return apierr.NewUserIsOwner()
	}

	moder, err := m.perms.IsBlogModer(ctx, targetID, blog.ID, "")
	if err != nil {
		return fmt.Errorf("failed to check target blog grant: %w", err)
	}
	if !moder {
		moder, err = m.perms.IsFandomModer(ctx, targetID, blog.FandomID, "")
		if err != nil {
			return fmt.Errorf("failed to check target fandom grant: %w", err)
		}
	}
	if moder {
		return apierr.NewUserIsModer()
	}

	err = m.moders.InsertBlogBan(ctx, model.Ban{
		UserID:   targetID,
		TargetID: blog.ID,
		SetBy:    principal,
		Reason:   reason,
	})
	if errors.Is(err, model.ErrConflict) {
		return apierr.NewUserIsBanned()
	}
	if err != nil {
		return fmt.Errorf("failed to insert blog ban: %w", err)
	}

	m.logger.Info("Moderation service: user banned at blog",
		"blog_id", blog.ID,
		"user_id", targetID,
		"set_by", principal)

	return nil
}

func (m *Moderation) UnbanAtBlog(ctx context.Context, principal int64, blog model.Blog, targetID int64) error {
	ok, err := m.resolver.CanManageBlog(ctx, principal, blog, model.FlagBanBlog)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}
	return m.moders.DeleteBlogBan(ctx, blog.ID, targetID)
}
