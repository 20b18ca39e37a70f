package repository // repository defines data access for car models

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/google/uuid"

	"github.com/autoparts/catalog/internal/model"
)

// CarModelRepo provides methods to work with car models in the database.
// All reads exclude soft-deleted rows; Delete only tombstones.
type CarModelRepo struct {
	db *sql.DB
}

// NewCarModelRepo constructs a CarModelRepo with the given DB handle.
func NewCarModelRepo(db *sql.DB) *CarModelRepo {
	return &CarModelRepo{db: db}
}

// Create inserts a single car model record. A fresh UUID is assigned
// when the ID field is zero.
func (r *CarModelRepo) Create(ctx context.Context, m *model.CarModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	const q = `INSERT INTO car_models (id, name, manufacturer, year)
	           VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, m.ID.String(), m.Name, m.Manufacturer, m.Year)
	return err
}

// GetByID retrieves a live car model by its id.
func (r *CarModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CarModel, error) {
	const q = `SELECT id, name, manufacturer, year, created_at, updated_at
	           FROM car_models WHERE id = ? AND deleted_at IS NULL`
	var (
		m     model.CarModel
		rawID string
	)
	err := r.db.QueryRowContext(ctx, q, id.String()).
		Scan(&rawID, &m.Name, &m.Manufacturer, &m.Year, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCarModelNotFound
		}
		return nil, err
	}
	m.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List retrieves a page of live car models ordered by creation time.
// page is 1-based; perPage bounds the page size.
func (r *CarModelRepo) List(ctx context.Context, page, perPage int) ([]model.CarModel, error) {
	if page < 1 {
		page = 1
	}
	const q = `SELECT id, name, manufacturer, year, created_at, updated_at
	           FROM car_models
	           WHERE deleted_at IS NULL
	           ORDER BY created_at, id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCarModels(rows)
}

// ListByPart retrieves live car models linked to the given part.
func (r *CarModelRepo) ListByPart(ctx context.Context, partID uuid.UUID) ([]model.CarModel, error) {
	const q = `SELECT m.id, m.name, m.manufacturer, m.year, m.created_at, m.updated_at
	           FROM car_models m
	           JOIN car_model_parts l ON l.car_model_id = m.id
	           WHERE l.part_id = ? AND m.deleted_at IS NULL
	           ORDER BY m.created_at, m.id`
	rows, err := r.db.QueryContext(ctx, q, partID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCarModels(rows)
}

// PartIDs returns the ids of live parts linked to a car model. Links
// pointing at tombstoned parts are excluded from reads but kept in the
// link table for audit.
func (r *CarModelRepo) PartIDs(ctx context.Context, carModelID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT l.part_id
	           FROM car_model_parts l
	           JOIN parts p ON p.id = l.part_id
	           WHERE l.car_model_id = ? AND p.deleted_at IS NULL
	           ORDER BY l.part_id`
	rows, err := r.db.QueryContext(ctx, q, carModelID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update rewrites the mutable columns of a car model. Returns
// ErrCarModelNotFound when the row is missing or tombstoned.
func (r *CarModelRepo) Update(ctx context.Context, m *model.CarModel) error {
	const q = `UPDATE car_models
	           SET name = ?, manufacturer = ?, year = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Manufacturer, m.Year, m.ID.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCarModelNotFound
	}
	return nil
}

// SoftDelete tombstones a car model. The row is retained for audit and
// excluded from all subsequent reads and from link eligibility.
func (r *CarModelRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE car_models SET deleted_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCarModelNotFound
	}
	return nil
}

func scanCarModels(rows *sql.Rows) ([]model.CarModel, error) {
	var result []model.CarModel
	for rows.Next() {
		var (
			m     model.CarModel
			rawID string
		)
		if err := rows.Scan(&rawID, &m.Name, &m.Manufacturer, &m.Year, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		m.ID = id
		result = append(result, m)
	}
	return result, rows.Err()
}
