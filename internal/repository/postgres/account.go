package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fanhub/fanhub-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, description, avatar, created_at, edited_at, edited_by`

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Username, &a.Description, &a.Avatar, &a.CreatedAt, &a.EditedAt, &a.EditedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, err
	}
	return a, nil
}

func (r *AccountRepository) GetCredentials(ctx context.Context, username string) (model.Credentials, error) {
	const query = `SELECT id, password_hash, random FROM users WHERE username = $1::CITEXT`

	var c model.Credentials
	err := r.db.QueryRow(ctx, query, username).Scan(&c.ID, &c.PasswordHash, &c.Nonce)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credentials{}, model.ErrNotFound
		}
		return model.Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}
	return c, nil
}

func (r *AccountRepository) GetCredentialsByID(ctx context.Context, id int64) (model.Credentials, error) {
	const query = `SELECT id, password_hash, random FROM users WHERE id = $1`

	var c model.Credentials
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.PasswordHash, &c.Nonce)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credentials{}, model.ErrNotFound
		}
		return model.Credentials{}, fmt.Errorf("failed to get credentials by id: %w", err)
	}
	return c, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`

	a, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return a, err
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE username = $1::CITEXT`

	a, err := scanAccount(r.db.QueryRow(ctx, query, username))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}
	return a, err
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	const query = `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, username, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrConflict
		}
		return 0, fmt.Errorf("failed to create account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) RotateNonce(ctx context.Context, id int64) error {
	const query = `UPDATE users SET random = gen_random_uuid() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to rotate nonce: %w", err)
	}
	return nil
}

func (r *AccountRepository) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, editedBy, id int64, description, avatar string) error {
	const query = `UPDATE users SET edited_by = $1, edited_at = now(), description = $3, avatar = $4 WHERE id = $2`

	if _, err := r.db.Exec(ctx, query, editedBy, id, description, avatar); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *AccountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}
