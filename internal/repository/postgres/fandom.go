package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.FandomStore = (*FandomRepository)(nil)

type FandomRepository struct {
	db Querier
}

func NewFandomRepository(db Querier) *FandomRepository {
	return &FandomRepository{db: db}
}

const fandomColumns = `id, url, title, description, avatar, created_at, edited_at, edited_by`

func scanFandom(row pgx.Row) (model.Fandom, error) {
	var f model.Fandom
	err := row.Scan(&f.ID, &f.URL, &f.Title, &f.Description, &f.Avatar, &f.CreatedAt, &f.EditedAt, &f.EditedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Fandom{}, model.ErrNotFound
		}
		return model.Fandom{}, err
	}
	return f, nil
}

func (r *FandomRepository) GetByID(ctx context.Context, id int64) (model.Fandom, error) {
	query := `SELECT ` + fandomColumns + ` FROM fandoms WHERE id = $1`

	f, err := scanFandom(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Fandom{}, fmt.Errorf("failed to get fandom by id: %w", err)
	}
	return f, err
}

func (r *FandomRepository) GetByURL(ctx context.Context, url string) (model.Fandom, error) {
	query := `SELECT ` + fandomColumns + ` FROM fandoms WHERE url = $1::CITEXT`

	f, err := scanFandom(r.db.QueryRow(ctx, query, url))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Fandom{}, fmt.Errorf("failed to get fandom by url: %w", err)
	}
	return f, err
}

func (r *FandomRepository) List(ctx context.Context) ([]model.Fandom, error) {
	query := `SELECT ` + fandomColumns + ` FROM fandoms ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fandoms: %w", err)
	}
	defer rows.Close()

	var fandoms []model.Fandom
	for rows.Next() {
		f, err := scanFandom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fandom: %w", err)
		}
		fandoms = append(fandoms, f)
	}
	return fandoms, rows.Err()
}

func (r *FandomRepository) Create(ctx context.Context, createdBy int64, url, title, description, avatar string) (int64, error) {
	const query = `INSERT INTO fandoms (url, title, description, avatar, edited_by)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, url, title, description, avatar, createdBy).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrConflict
		}
		return 0, fmt.Errorf("failed to create fandom: %w", err)
	}
	return id, nil
}

func (r *FandomRepository) Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error {
	const query = `UPDATE fandoms SET edited_by = $1, edited_at = now(),
			  title = $3, description = $4, avatar = $5 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, editedBy, id, title, description, avatar); err != nil {
		return fmt.Errorf("failed to update fandom: %w", err)
	}
	return nil
}
