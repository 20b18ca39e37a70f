package model

import (
	"time"

	"github.com/google/uuid"
)

// Part represents a row in the `parts` table. Price is stored as an
// integer number of cents to avoid floating point drift; transports
// render it with two fractional digits.
//
// Fields:
//  ID         – UUID primary key of the part.
//  PartNumber – manufacturer part number.
//  Name       – short display name.
//  Details    – free-form description.
//  PriceCents – unit price in cents.
//  Quantity   – units in stock (never negative).
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
//  DeletedAt  – soft-delete timestamp (nil while the row is live).
type Part struct {
	ID         uuid.UUID  // parts.id
	PartNumber string     // parts.part_number
	Name       string     // parts.name
	Details    string     // parts.details
	PriceCents int64      // parts.price_cents
	Quantity   uint32     // parts.quantity
	CreatedAt  time.Time  // parts.created_at
	UpdatedAt  time.Time  // parts.updated_at
	DeletedAt  *time.Time // parts.deleted_at (nullable)
}
