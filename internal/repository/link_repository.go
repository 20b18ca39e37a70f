package repository // repository for car model <-> part link persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// LinkRepo encapsulates database operations on the car_model_parts
// link table. A link either exists or it does not; AddLink relies on
// INSERT IGNORE against the composite primary key so re-adding an
// existing pair never errors and never duplicates. Each call is its
// own independently committed statement; no transaction spans a batch
// of link mutations.
type LinkRepo struct {
	db *sql.DB
}

// NewLinkRepo constructs a LinkRepo given a DB handle.
func NewLinkRepo(db *sql.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

// CarModelExists reports whether a live (non-deleted) car model row
// exists for the id.
func (r *LinkRepo) CarModelExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM car_models WHERE id = ? AND deleted_at IS NULL`
	return r.exists(ctx, q, id.String())
}

// PartExists reports whether a live (non-deleted) part row exists for
// the id.
func (r *LinkRepo) PartExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM parts WHERE id = ? AND deleted_at IS NULL`
	return r.exists(ctx, q, id.String())
}

// LinkExists reports whether the (car model, part) pair is currently
// linked.
func (r *LinkRepo) LinkExists(ctx context.Context, carModelID, partID uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM car_model_parts WHERE car_model_id = ? AND part_id = ?`
	return r.exists(ctx, q, carModelID.String(), partID.String())
}

// AddLink creates the link if it does not already exist. Idempotent.
func (r *LinkRepo) AddLink(ctx context.Context, carModelID, partID uuid.UUID) error {
	const q = `INSERT IGNORE INTO car_model_parts (car_model_id, part_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, carModelID.String(), partID.String())
	return err
}

// RemoveLink deletes the link row. Removing an absent link is not an
// error here; callers check LinkExists first to classify the outcome.
func (r *LinkRepo) RemoveLink(ctx context.Context, carModelID, partID uuid.UUID) error {
	const q = `DELETE FROM car_model_parts WHERE car_model_id = ? AND part_id = ?`
	_, err := r.db.ExecContext(ctx, q, carModelID.String(), partID.String())
	return err
}

func (r *LinkRepo) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
