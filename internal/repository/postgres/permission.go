package postgres

import (
	"context"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.PermissionStore = (*PermissionRepository)(nil)

// PermissionRepository answers the existence queries behind the permission
// cascade. Flags resolve through static column tables so no caller-supplied
// text ever reaches SQL.
type PermissionRepository struct {
	db Querier
}

func NewPermissionRepository(db Querier) *PermissionRepository {
	return &PermissionRepository{db: db}
}

var fandomFlagColumns = map[model.Flag]string{
	model.FlagEditFandom:   "edit_f",
	model.FlagManageFandom: "manage_f",
	model.FlagBanFandom:    "ban_f",
	model.FlagCreateBlog:   "create_b",
	model.FlagEditBlog:     "edit_b",
	model.FlagEditPost:     "edit_p",
	model.FlagEditComment:  "edit_c",
}

var blogFlagColumns = map[model.Flag]string{
	model.FlagEditBlog:    "edit_b",
	model.FlagManageBlog:  "manage_b",
	model.FlagBanBlog:     "ban_b",
	model.FlagCreatePost:  "create_p",
	model.FlagEditPost:    "edit_p",
	model.FlagEditComment: "edit_c",
}

func (r *PermissionRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to run existence check: %w", err)
	}
	return exists, nil
}

func (r *PermissionRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`, userID)
}

func (r *PermissionRepository) IsFandomModer(ctx context.Context, userID, fandomID int64, flag model.Flag) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fandom_moders WHERE user_id = $1 AND target_id = $2`
	if flag != "" {
		column, ok := fandomFlagColumns[flag]
		if !ok {
			return false, fmt.Errorf("unknown fandom flag %q", flag)
		}
		query += ` AND ` + column + ` = TRUE`
	}
	query += `)`
	return r.exists(ctx, query, userID, fandomID)
}

func (r *PermissionRepository) IsFandomBanned(ctx context.Context, userID, fandomID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM fandom_bans WHERE user_id = $1 AND target_id = $2)`,
		userID, fandomID)
}

func (r *PermissionRepository) IsBlogModer(ctx context.Context, userID, blogID int64, flag model.Flag) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blog_moders WHERE user_id = $1 AND target_id = $2`
	if flag != "" {
		column, ok := blogFlagColumns[flag]
		if !ok {
			return false, fmt.Errorf("unknown blog flag %q", flag)
		}
		query += ` AND ` + column + ` = TRUE`
	}
	query += `)`
	return r.exists(ctx, query, userID, blogID)
}

func (r *PermissionRepository) IsBlogBanned(ctx context.Context, userID, blogID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM blog_bans WHERE user_id = $1 AND target_id = $2)`,
		userID, blogID)
}

func (r *PermissionRepository) IsBlogOwner(ctx context.Context, userID, blogID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM blogs WHERE owner = $1 AND id = $2)`,
		userID, blogID)
}
