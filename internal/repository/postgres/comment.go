package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, post_id, blog_id, fandom_id, owner, parent_id, content, created_at, edited_at, edited_by`

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.BlogID, &c.FandomID, &c.Owner, &c.ParentID, &c.Content,
		&c.CreatedAt, &c.EditedAt, &c.EditedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, err
	}
	return c, nil
}

func (r *CommentRepository) collect(rows pgx.Rows) ([]model.Comment, error) {
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Comment{}, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return c, err
}

// List narrows by the most specific non-zero scope: post, then blog, then
// fandom, then everything.
func (r *CommentRepository) List(ctx context.Context, postID, blogID, fandomID int64) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments`
	var args []any

	switch {
	case postID != 0:
		query += ` WHERE post_id = $1`
		args = append(args, postID)
	case blogID != 0:
		query += ` WHERE blog_id = $1`
		args = append(args, blogID)
	case fandomID != 0:
		query += ` WHERE fandom_id = $1`
		args = append(args, fandomID)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return r.collect(rows)
}

func (r *CommentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE owner = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by owner: %w", err)
	}
	return r.collect(rows)
}

func (r *CommentRepository) ListAnswers(ctx context.Context, parentID int64) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE parent_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comment answers: %w", err)
	}
	return r.collect(rows)
}

// Create inserts a comment. The parent_id column is NOT NULL with zero
// meaning top-level, so parentID is stored as-is.
func (r *CommentRepository) Create(ctx context.Context, owner, postID, blogID, fandomID, parentID int64, content string) (int64, error) {
	const query = `INSERT INTO comments (post_id, blog_id, fandom_id, owner, parent_id, content)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, postID, blogID, fandomID, owner, parentID, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}
	return id, nil
}

func (r *CommentRepository) Update(ctx context.Context, editedBy, id int64, content string) error {
	const query = `UPDATE comments SET edited_by = $1, edited_at = now(), content = $3 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, editedBy, id, content); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListVotes(ctx context.Context, commentID int64) ([]model.Vote, error) {
	const query = `SELECT user_id, up, set_at FROM comment_votes WHERE comment_id = $1 ORDER BY user_id ASC`

	rows, err := r.db.Query(ctx, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comment votes: %w", err)
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.UserID, &v.Up, &v.SetAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (r *CommentRepository) SetVote(ctx context.Context, commentID, userID int64, up bool) error {
	const query = `INSERT INTO comment_votes (comment_id, user_id, up) VALUES ($1, $2, $3)
			  ON CONFLICT (comment_id, user_id) DO UPDATE SET up = $3, set_at = now()`

	if _, err := r.db.Exec(ctx, query, commentID, userID, up); err != nil {
		return fmt.Errorf("failed to set comment vote: %w", err)
	}
	return nil
}
