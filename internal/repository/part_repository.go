package repository // repository defines data access for parts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/autoparts/catalog/internal/model"
)

// PartRepo provides methods to work with parts in the database. All
// reads exclude soft-deleted rows; Delete only tombstones.
type PartRepo struct {
	db *sql.DB
}

// NewPartRepo constructs a PartRepo with the given DB handle.
func NewPartRepo(db *sql.DB) *PartRepo {
	return &PartRepo{db: db}
}

// Create inserts a single part record. A fresh UUID is assigned when
// the ID field is zero.
func (r *PartRepo) Create(ctx context.Context, p *model.Part) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	const q = `INSERT INTO parts (id, part_number, name, details, price_cents, quantity)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID.String(), p.PartNumber, p.Name, p.Details, p.PriceCents, p.Quantity)
	return err
}

// GetByID retrieves a live part by its id.
func (r *PartRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	const q = `SELECT id, part_number, name, details, price_cents, quantity, created_at, updated_at
	           FROM parts WHERE id = ? AND deleted_at IS NULL`
	var (
		p     model.Part
		rawID string
	)
	err := r.db.QueryRowContext(ctx, q, id.String()).
		Scan(&rawID, &p.PartNumber, &p.Name, &p.Details, &p.PriceCents, &p.Quantity,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	p.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves a page of live parts ordered by creation time. page
// is 1-based; perPage bounds the page size.
func (r *PartRepo) List(ctx context.Context, page, perPage int) ([]model.Part, error) {
	if page < 1 {
		page = 1
	}
	const q = `SELECT id, part_number, name, details, price_cents, quantity, created_at, updated_at
	           FROM parts
	           WHERE deleted_at IS NULL
	           ORDER BY created_at, id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

// ListByCarModel retrieves live parts linked to the given car model.
func (r *PartRepo) ListByCarModel(ctx context.Context, carModelID uuid.UUID) ([]model.Part, error) {
	const q = `SELECT p.id, p.part_number, p.name, p.details, p.price_cents, p.quantity, p.created_at, p.updated_at
	           FROM parts p
	           JOIN car_model_parts l ON l.part_id = p.id
	           WHERE l.car_model_id = ? AND p.deleted_at IS NULL
	           ORDER BY p.created_at, p.id`
	rows, err := r.db.QueryContext(ctx, q, carModelID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

// Update rewrites the mutable columns of a part. Returns
// ErrPartNotFound when the row is missing or tombstoned.
func (r *PartRepo) Update(ctx context.Context, p *model.Part) error {
	const q = `UPDATE parts
	           SET part_number = ?, name = ?, details = ?, price_cents = ?, quantity = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q,
		p.PartNumber, p.Name, p.Details, p.PriceCents, p.Quantity, p.ID.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPartNotFound
	}
	return nil
}

// SoftDelete tombstones a part. The row is retained for audit and
// excluded from all subsequent reads and from link eligibility.
func (r *PartRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE parts SET deleted_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPartNotFound
	}
	return nil
}

func scanParts(rows *sql.Rows) ([]model.Part, error) {
	var result []model.Part
	for rows.Next() {
		var (
			p     model.Part
			rawID string
		)
		if err := rows.Scan(&rawID, &p.PartNumber, &p.Name, &p.Details, &p.PriceCents,
			&p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		p.ID = id
		result = append(result, p)
	}
	return result, rows.Err()
}
