package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.BlogStore = (*BlogRepository)(nil)

type BlogRepository struct {
	db Querier
}

func NewBlogRepository(db Querier) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, fandom_id, owner, url, title, description, avatar, created_at, edited_at, edited_by`

func scanBlog(row pgx.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.FandomID, &b.Owner, &b.URL, &b.Title, &b.Description, &b.Avatar,
		&b.CreatedAt, &b.EditedAt, &b.EditedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Blog{}, model.ErrNotFound
		}
		return model.Blog{}, err
	}
	return b, nil
}

func (r *BlogRepository) collect(rows pgx.Rows) ([]model.Blog, error) {
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	b, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Blog{}, fmt.Errorf("failed to get blog by id: %w", err)
	}
	return b, err
}

func (r *BlogRepository) GetByURL(ctx context.Context, fandomID int64, url string) (model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE fandom_id = $1 AND url = $2::CITEXT`

	b, err := scanBlog(r.db.QueryRow(ctx, query, fandomID, url))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Blog{}, fmt.Errorf("failed to get blog by url: %w", err)
	}
	return b, err
}

func (r *BlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return r.collect(rows)
}

func (r *BlogRepository) ListByFandom(ctx context.Context, fandomID int64) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE fandom_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, fandomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by fandom: %w", err)
	}
	return r.collect(rows)
}

func (r *BlogRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE owner = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by owner: %w", err)
	}
	return r.collect(rows)
}

func (r *BlogRepository) Create(ctx context.Context, owner, fandomID int64, url, title, description, avatar string) (int64, error) {
	const query = `INSERT INTO blogs (fandom_id, owner, url, title, description, avatar)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, fandomID, owner, url, title, description, avatar).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrConflict
		}
		return 0, fmt.Errorf("failed to create blog: %w", err)
	}
	return id, nil
}

func (r *BlogRepository) Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error {
	const query = `UPDATE blogs SET edited_by = $1, edited_at = now(),
			  title = $3, description = $4, avatar = $5 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, editedBy, id, title, description, avatar); err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}
