package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/autoparts/catalog/internal/model"
)

// UserRepo provides access to the `users` table. Email addresses are
// normalized (trimmed, lower-cased) before every write and lookup.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with the given (already hashed) password and
// returns the new id. Duplicate usernames and emails map to the
// corresponding sentinel errors.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash) VALUES (?,?,?,?)",
		id.String(), username, email, passwordHash)
	if err != nil {
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "1062") {
			if strings.Contains(msg, "username") {
				return uuid.Nil, ErrUsernameExists
			}
			return uuid.Nil, ErrEmailExists
		}
		return uuid.Nil, err
	}
	return id, nil
}

// GetByUsername fetches a live user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getWhere(ctx, "username = ?", strings.TrimSpace(username))
}

// GetByEmail fetches a live user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getWhere(ctx, "email = ?", NormalizeEmail(email))
}

// GetByID fetches a live user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getWhere(ctx, "id = ?", id.String())
}

// Update rewrites username and email. Returns ErrUserNotFound when the
// row is missing or tombstoned.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, email=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND deleted_at IS NULL",
		strings.TrimSpace(u.Username), NormalizeEmail(u.Email), u.ID.String())
	if err != nil {
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "1062") {
			if strings.Contains(msg, "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND deleted_at IS NULL",
		passwordHash, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SoftDelete tombstones a user and deactivates the account.
func (r *UserRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=CURRENT_TIMESTAMP, is_active=0 WHERE id=? AND deleted_at IS NULL",
		id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getWhere(ctx context.Context, cond string, arg any) (*model.User, error) {
	q := "SELECT id, username, email, password_hash, is_active, is_staff, created_at, updated_at " +
		"FROM users WHERE " + cond + " AND deleted_at IS NULL LIMIT 1"
	var (
		u     model.User
		rawID string
	)
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&rawID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsStaff,
			&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// NormalizeEmail lower-cases the domain part of an email address and
// trims surrounding whitespace, mirroring the normalization applied
// when accounts are created.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
