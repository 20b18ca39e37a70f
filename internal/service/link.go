// Package service holds domain operations that sit between handlers
// and repositories. The central piece is the LinkResolver, which runs
// the batch association/removal workflow between car models and parts.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AssociationStore is the slice of the resource store the LinkResolver
// needs. Implemented by repository.LinkRepo; tests supply an in-memory
// fake. Existence checks only see live (non-tombstoned) rows.
type AssociationStore interface {
	CarModelExists(ctx context.Context, id uuid.UUID) (bool, error)
	PartExists(ctx context.Context, id uuid.UUID) (bool, error)
	LinkExists(ctx context.Context, carModelID, partID uuid.UUID) (bool, error)
	AddLink(ctx context.Context, carModelID, partID uuid.UUID) error
	RemoveLink(ctx context.Context, carModelID, partID uuid.UUID) error
}

// ValidationError reports malformed request payloads with a field ->
// message map. Raised before any store access; handlers translate it
// into an HTTP 400 with the map as the body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// AssociateReport is the per-car-model outcome breakdown of a batch
// association. Associated and NotFoundParts carry one key per resolved
// car model (the key is present even when its list is empty, so
// callers can tell "car model found, nothing linked" from "car model
// missing"). NotFoundCarModels lists ids that resolved to no live car
// model, each at most once.
type AssociateReport struct {
	Associated        map[string][]string `json:"associated_parts"`
	NotFoundParts     map[string][]string `json:"not_found_parts,omitempty"`
	NotFoundCarModels []string            `json:"not_found_car_models,omitempty"`
}

// Resolved reports whether at least one car model id resolved. This is
// the overall success condition: a request where every car model was
// unknown is a not-found outcome, anything else is (partial) success.
func (r *AssociateReport) Resolved() bool {
	return len(r.Associated) > 0
}

// DisassociateReport is the outcome of a batch link removal. Every
// requested part id lands in exactly one of the two lists: Removed for
// links that existed and were deleted, Invalid for ids that were
// malformed, unknown, or simply not linked to the car model.
type DisassociateReport struct {
	Removed []string `json:"removed_part_ids"`
	Invalid []string `json:"invalid_part_ids"`
}

// LinkResolver runs the association/removal workflow between car
// models and parts. Each id resolution plus mutation is a short,
// independently committed unit: the batch never runs inside one
// transaction, and a per-item miss never aborts the remaining items.
type LinkResolver struct {
	store AssociationStore
}

// NewLinkResolver constructs a LinkResolver bound to the given store.
func NewLinkResolver(store AssociationStore) *LinkResolver {
	if store == nil {
		panic("nil store passed to NewLinkResolver")
	}
	return &LinkResolver{store: store}
}

// Associate links every resolvable (car model, part) pair of the cross
// product and reports the per-item outcome.
//
// For each car model id: if it does not resolve to a live car model it
// is recorded once under NotFoundCarModels and no part resolution is
// attempted for it. Otherwise every part id is resolved in turn;
// misses go to NotFoundParts under that car model, hits are linked
// (idempotently) and recorded under Associated. Store failures other
// than a miss abort with the error — those are persistence problems,
// not per-item outcomes.
//
// Empty input lists are a validation error raised before any store
// access, distinct from "all ids invalid".
func (s *LinkResolver) Associate(ctx context.Context, carModelIDs, partIDs []string) (*AssociateReport, error) {
	if len(carModelIDs) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"car_model_ids": "must be a non-empty list"}}
	}
	if len(partIDs) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"part_ids": "must be a non-empty list"}}
	}

	report := &AssociateReport{
		Associated:    make(map[string][]string),
		NotFoundParts: make(map[string][]string),
	}
	missingSeen := make(map[string]bool)

	for _, rawCM := range carModelIDs {
		carModelID, err := uuid.Parse(rawCM)
		found := false
		if err == nil {
			found, err = s.store.CarModelExists(ctx, carModelID)
			if err != nil {
				return nil, err
			}
		}
		if !found {
			if !missingSeen[rawCM] {
				missingSeen[rawCM] = true
				report.NotFoundCarModels = append(report.NotFoundCarModels, rawCM)
			}
			continue
		}

		if _, ok := report.Associated[rawCM]; !ok {
			report.Associated[rawCM] = []string{}
			report.NotFoundParts[rawCM] = []string{}
		}
		for _, rawPart := range partIDs {
			partID, err := uuid.Parse(rawPart)
			exists := false
			if err == nil {
				exists, err = s.store.PartExists(ctx, partID)
				if err != nil {
					return nil, err
				}
			}
			if !exists {
				report.NotFoundParts[rawCM] = append(report.NotFoundParts[rawCM], rawPart)
				continue
			}
			if err := s.store.AddLink(ctx, carModelID, partID); err != nil {
				return nil, err
			}
			report.Associated[rawCM] = append(report.Associated[rawCM], rawPart)
		}
	}
	return report, nil
}

// Disassociate removes the links between one car model and the listed
// parts. Ids that fail to parse, or that are not currently linked to
// the car model, are recorded as invalid; links that exist are removed
// and recorded. An empty list, or a list yielding zero removals and
// zero invalid entries, is still a success — removal is non-fatal by
// design. The caller is expected to have resolved the car model
// itself.
func (s *LinkResolver) Disassociate(ctx context.Context, carModelID uuid.UUID, partIDs []string) (*DisassociateReport, error) {
	report := &DisassociateReport{
		Removed: []string{},
		Invalid: []string{},
	}
	for _, raw := range partIDs {
		partID, err := uuid.Parse(raw)
		if err != nil {
			report.Invalid = append(report.Invalid, raw)
			continue
		}
		linked, err := s.store.LinkExists(ctx, carModelID, partID)
		if err != nil {
			return nil, err
		}
		if !linked {
			report.Invalid = append(report.Invalid, raw)
			continue
		}
		if err := s.store.RemoveLink(ctx, carModelID, partID); err != nil {
			return nil, err
		}
		report.Removed = append(report.Removed, raw)
	}
	return report, nil
}
