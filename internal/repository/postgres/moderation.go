package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.ModerationStore = (*ModerationRepository)(nil)

// ModerationRepository persists grants and bans at both scopes. Inserts map
// unique-constraint violations to model.ErrConflict so callers can treat the
// constraint as the authoritative guard against concurrent writes.
type ModerationRepository struct {
	db Querier
}

func NewModerationRepository(db Querier) *ModerationRepository {
	return &ModerationRepository{db: db}
}

const fandomModerColumns = `user_id, target_id, set_by, edit_f, manage_f, ban_f, create_b, edit_b, edit_p, edit_c, created_at`

func scanFandomModer(row pgx.Row) (model.FandomModer, error) {
	var m model.FandomModer
	err := row.Scan(&m.UserID, &m.FandomID, &m.SetBy,
		&m.Flags.EditFandom, &m.Flags.ManageFandom, &m.Flags.BanFandom, &m.Flags.CreateBlog,
		&m.Flags.EditBlog, &m.Flags.EditPost, &m.Flags.EditComment, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FandomModer{}, model.ErrNotFound
		}
		return model.FandomModer{}, err
	}
	return m, nil
}

func (r *ModerationRepository) ListFandomModers(ctx context.Context, fandomID int64) ([]model.FandomModer, error) {
	query := `SELECT ` + fandomModerColumns + ` FROM fandom_moders WHERE target_id = $1 ORDER BY user_id ASC`

	rows, err := r.db.Query(ctx, query, fandomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fandom moders: %w", err)
	}
	defer rows.Close()

	var moders []model.FandomModer
	for rows.Next() {
		m, err := scanFandomModer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fandom moder: %w", err)
		}
		moders = append(moders, m)
	}
	return moders, rows.Err()
}

func (r *ModerationRepository) GetFandomModer(ctx context.Context, fandomID, userID int64) (model.FandomModer, error) {
	query := `SELECT ` + fandomModerColumns + ` FROM fandom_moders WHERE target_id = $1 AND user_id = $2`

	m, err := scanFandomModer(r.db.QueryRow(ctx, query, fandomID, userID))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.FandomModer{}, fmt.Errorf("failed to get fandom moder: %w", err)
	}
	return m, err
}

func (r *ModerationRepository) InsertFandomModer(ctx context.Context, m model.FandomModer) error {
	const query = `INSERT INTO fandom_moders (user_id, target_id, set_by, edit_f, manage_f, ban_f, create_b, edit_b, edit_p, edit_c)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query, m.UserID, m.FandomID, m.SetBy,
		m.Flags.EditFandom, m.Flags.ManageFandom, m.Flags.BanFandom, m.Flags.CreateBlog,
		m.Flags.EditBlog, m.Flags.EditPost, m.Flags.EditComment)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to insert fandom moder: %w", err)
	}
	return nil
}

func (r *ModerationRepository) UpdateFandomModer(ctx context.Context, m model.FandomModer) error {
	const query = `UPDATE fandom_moders SET set_by = $3, edit_f = $4, manage_f = $5, ban_f = $6,
			  create_b = $7, edit_b = $8, edit_p = $9, edit_c = $10
			  WHERE user_id = $1 AND target_id = $2`

	_, err := r.db.Exec(ctx, query, m.UserID, m.FandomID, m.SetBy,
		m.Flags.EditFandom, m.Flags.ManageFandom, m.Flags.BanFandom, m.Flags.CreateBlog,
		m.Flags.EditBlog, m.Flags.EditPost, m.Flags.EditComment)
	if err != nil {
		return fmt.Errorf("failed to update fandom moder: %w", err)
	}
	return nil
}

func (r *ModerationRepository) DeleteFandomModer(ctx context.Context, fandomID, userID int64) error {
	const query = `DELETE FROM fandom_moders WHERE target_id = $1 AND user_id = $2`

	if _, err := r.db.Exec(ctx, query, fandomID, userID); err != nil {
		return fmt.Errorf("failed to delete fandom moder: %w", err)
	}
	return nil
}

const banColumns = `user_id, target_id, set_by, reason, created_at`

func scanBan(row pgx.Row) (model.Ban, error) {
	var b model.Ban
	err := row.Scan(&b.UserID, &b.TargetID, &b.SetBy, &b.Reason, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Ban{}, model.ErrNotFound
		}
		return model.Ban{}, err
	}
	return b, nil
}

func (r *ModerationRepository) listBans(ctx context.Context, table string, targetID int64) ([]model.Ban, error) {
	query := `SELECT ` + banColumns + ` FROM ` + table + ` WHERE target_id = $1 ORDER BY user_id ASC`

	rows, err := r.db.Query(ctx, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}
	defer rows.Close()

	var bans []model.Ban
	for rows.Next() {
		b, err := scanBan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ban: %w", err)
		}
		bans = append(bans, b)
	}
	return bans, rows.Err()
}

func (r *ModerationRepository) getBan(ctx context.Context, table string, targetID, userID int64) (model.Ban, error) {
	query := `SELECT ` + banColumns + ` FROM ` + table + ` WHERE target_id = $1 AND user_id = $2`

	b, err := scanBan(r.db.QueryRow(ctx, query, targetID, userID))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Ban{}, fmt.Errorf("failed to get ban: %w", err)
	}
	return b, err
}

func (r *ModerationRepository) insertBan(ctx context.Context, table string, b model.Ban) error {
	query := `INSERT INTO ` + table + ` (user_id, target_id, set_by, reason) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, b.UserID, b.TargetID, b.SetBy, b.Reason)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to insert ban: %w", err)
	}
	return nil
}

func (r *ModerationRepository) deleteBan(ctx context.Context, table string, targetID, userID int64) error {
	query := `DELETE FROM ` + table + ` WHERE target_id = $1 AND user_id = $2`

	if _, err := r.db.Exec(ctx, query, targetID, userID); err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	return nil
}

func (r *ModerationRepository) ListFandomBans(ctx context.Context, fandomID int64) ([]model.Ban, error) {
	return r.listBans(ctx, "fandom_bans", fandomID)
}

func (r *ModerationRepository) GetFandomBan(ctx context.Context, fandomID, userID int64) (model.Ban, error) {
	return r.getBan(ctx, "fandom_bans", fandomID, userID)
}

func (r *ModerationRepository) InsertFandomBan(ctx context.Context, b model.Ban) error {
	return r.insertBan(ctx, "fandom_bans", b)
}

func (r *ModerationRepository) DeleteFandomBan(ctx context.Context, fandomID, userID int64) error {
	return r.deleteBan(ctx, "fandom_bans", fandomID, userID)
}

const blogModerColumns = `user_id, target_id, set_by, edit_b, manage_b, ban_b, create_p, edit_p, edit_c, created_at`

func scanBlogModer(row pgx.Row) (model.BlogModer, error) {
	var m model.BlogModer
	err := row.Scan(&m.UserID, &m.BlogID, &m.SetBy,
		&m.Flags.EditBlog, &m.Flags.ManageBlog, &m.Flags.BanBlog,
		&m.Flags.CreatePost, &m.Flags.EditPost, &m.Flags.EditComment, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BlogModer{}, model.ErrNotFound
		}
		return model.BlogModer{}, err
	}
	return m, nil
}

func (r *ModerationRepository) ListBlogModers(ctx context.Context, blogID int64) ([]model.BlogModer, error) {
	query := `SELECT ` + blogModerColumns + ` FROM blog_moders WHERE target_id = $1 ORDER BY user_id ASC`

	rows, err := r.db.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog moders: %w", err)
	}
	defer rows.Close()

	var moders []model.BlogModer
	for rows.Next() {
		m, err := scanBlogModer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog moder: %w", err)
		}
		moders = append(moders, m)
	}
	return moders, rows.Err()
}

func (r *ModerationRepository) GetBlogModer(ctx context.Context, blogID, userID int64) (model.BlogModer, error) {
	query := `SELECT ` + blogModerColumns + ` FROM blog_moders WHERE target_id = $1 AND user_id = $2`

	m, err := scanBlogModer(r.db.QueryRow(ctx, query, blogID, userID))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.BlogModer{}, fmt.Errorf("failed to get blog moder: %w", err)
	}
	return m, err
}

func (r *ModerationRepository) InsertBlogModer(ctx context.Context, m model.BlogModer) error {
	const query = `INSERT INTO blog_moders (user_id, target_id, set_by, edit_b, manage_b, ban_b, create_p, edit_p, edit_c)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query, m.UserID, m.BlogID, m.SetBy,
		m.Flags.EditBlog, m.Flags.ManageBlog, m.Flags.BanBlog,
		m.Flags.CreatePost, m.Flags.EditPost, m.Flags.EditComment)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to insert blog moder: %w", err)
	}
	return nil
}

func (r *ModerationRepository) UpdateBlogModer(ctx context.Context, m model.BlogModer) error {
	const query = `UPDATE blog_moders SET set_by = $3, edit_b = $4, manage_b = $5, ban_b = $6,
			  create_p = $7, edit_p = $8, edit_c = $9
			  WHERE user_id = $1 AND target_id = $2`

	_, err := r.db.Exec(ctx, query, m.UserID, m.BlogID, m.SetBy,
		m.Flags.EditBlog, m.Flags.ManageBlog, m.Flags.BanBlog,
		m.Flags.CreatePost, m.Flags.EditPost, m.Flags.EditComment)
	if err != nil {
		return fmt.Errorf("failed to update blog moder: %w", err)
	}
	return nil
}

func (r *ModerationRepository) DeleteBlogModer(ctx context.Context, blogID, userID int64) error {
	const query = `DELETE FROM blog_moders WHERE target_id = $1 AND user_id = $2`

	if _, err := r.db.Exec(ctx, query, blogID, userID); err != nil {
		return fmt.Errorf("failed to delete blog moder: %w", err)
	}
	return nil
}

func (r *ModerationRepository) ListBlogBans(ctx context.Context, blogID int64) ([]model.Ban, error) {
	return r.listBans(ctx, "blog_bans", blogID)
}

func (r *ModerationRepository) GetBlogBan(ctx context.Context, blogID, userID int64) (model.Ban, error) {
	return r.getBan(ctx, "blog_bans", blogID, userID)
}

func (r *ModerationRepository) InsertBlogBan(ctx context.Context, b model.Ban) error {
	return r.insertBan(ctx, "blog_bans", b)
}

func (r *ModerationRepository) DeleteBlogBan(ctx context.Context, blogID, userID int64) error {
	return r.deleteBan(ctx, "blog_bans", blogID, userID)
}
