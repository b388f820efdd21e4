package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db Querier
}

func NewPostRepository(db Querier) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, blog_id, fandom_id, owner, title, content, created_at, edited_at, edited_by`

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.BlogID, &p.FandomID, &p.Owner, &p.Title, &p.Content,
		&p.CreatedAt, &p.EditedAt, &p.EditedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, err
	}
	return p, nil
}

func (r *PostRepository) collect(rows pgx.Rows) ([]model.Post, error) {
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	return p, err
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return r.collect(rows)
}

func (r *PostRepository) ListByBlog(ctx context.Context, blogID int64) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE blog_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by blog: %w", err)
	}
	return r.collect(rows)
}

func (r *PostRepository) ListByFandom(ctx context.Context, fandomID int64) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE fandom_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, fandomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by fandom: %w", err)
	}
	return r.collect(rows)
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE owner = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by owner: %w", err)
	}
	return r.collect(rows)
}

func (r *PostRepository) Create(ctx context.Context, owner, blogID, fandomID int64, title, content string) (int64, error) {
	const query = `INSERT INTO posts (blog_id, fandom_id, owner, title, content)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, blogID, fandomID, owner, title, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	return id, nil
}

func (r *PostRepository) Update(ctx context.Context, editedBy, id int64, title, content string) error {
	const query = `UPDATE posts SET edited_by = $1, edited_at = now(),
			  title = $3, content = $4 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, editedBy, id, title, content); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *PostRepository) ListVotes(ctx context.Context, postID int64) ([]model.Vote, error) {
	const query = `SELECT user_id, up, set_at FROM post_votes WHERE post_id = $1 ORDER BY user_id ASC`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post votes: %w", err)
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.UserID, &v.Up, &v.SetAt); err != nil {
			return nil, fmt.Errorf("failed to scan post vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (r *PostRepository) SetVote(ctx context.Context, postID, userID int64, up bool) error {
	const query = `INSERT INTO post_votes (post_id, user_id, up) VALUES ($1, $2, $3)
			  ON CONFLICT (post_id, user_id) DO UPDATE SET up = $3, set_at = now()`

	if _, err := r.db.Exec(ctx, query, postID, userID, up); err != nil {
		return fmt.Errorf("failed to set post vote: %w", err)
	}
	return nil
}
