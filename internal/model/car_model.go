package model

import (
	"time"

	"github.com/google/uuid"
)

// CarModel represents a row in the `car_models` table. Parts are
// related through the `car_model_parts` link table and are loaded
// separately by the repository; the struct itself only carries the
// scalar columns.
//
// Fields:
//  ID           – UUID primary key of the car model.
//  Name         – commercial name of the model.
//  Manufacturer – name of the manufacturer.
//  Year         – model year.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
//  DeletedAt    – soft-delete timestamp (nil while the row is live).
type CarModel struct {
	ID           uuid.UUID  // car_models.id
	Name         string     // car_models.name
	Manufacturer string     // car_models.manufacturer
	Year         int        // car_models.year
	CreatedAt    time.Time  // car_models.created_at
	UpdatedAt    time.Time  // car_models.updated_at
	DeletedAt    *time.Time // car_models.deleted_at (nullable)
}
