package queue

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/autoparts/catalog/internal/model"
	"github.com/autoparts/catalog/internal/utils"
)

// PartCreator is the slice of the store the importer needs.
// Implemented by repository.PartRepo.
type PartCreator interface {
	Create(ctx context.Context, p *model.Part) error
}

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	Created int // rows persisted
	Failed  int // rows skipped after a parse or persistence error
}

// ImportPartsCSV streams the file at path and inserts one Part per
// row. Expected header fields: part_number, name, details, price,
// quantity. Any construction or persistence failure logs the offending
// row together with the error and moves on to the next row — no retry,
// no abort, no transaction across rows. Partial imports are expected
// and acceptable; only failures to read the stream itself are returned
// as errors.
func ImportPartsCSV(ctx context.Context, path string, parts PartCreator) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // row length errors are per-row, handled below

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"part_number", "name", "details", "price", "quantity"} {
		if _, ok := col[required]; !ok {
			return ImportResult{}, fmt.Errorf("missing csv column %q", required)
		}
	}

	var res ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row (e.g. bare quote); skip it like any other bad row.
			log.Printf("csv-import: failed to read row: %v", err)
			res.Failed++
			continue
		}
		part, err := partFromRecord(col, record)
		if err == nil {
			err = parts.Create(ctx, part)
		}
		if err != nil {
			log.Printf("csv-import: failed to process row %q: %v", strings.Join(record, ","), err)
			res.Failed++
			continue
		}
		res.Created++
	}
	return res, nil
}

func partFromRecord(col map[string]int, record []string) (*model.Part, error) {
	field := func(name string) (string, error) {
		i := col[name]
		if i >= len(record) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.TrimSpace(record[i]), nil
	}

	partNumber, err := field("part_number")
	if err != nil {
		return nil, err
	}
	name, err := field("name")
	if err != nil {
		return nil, err
	}
	details, err := field("details")
	if err != nil {
		return nil, err
	}
	priceRaw, err := field("price")
	if err != nil {
		return nil, err
	}
	quantityRaw, err := field("quantity")
	if err != nil {
		return nil, err
	}

	if partNumber == "" || name == "" {
		return nil, fmt.Errorf("part_number and name are required")
	}
	priceCents, err := utils.ParseCents(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("price %q: %w", priceRaw, err)
	}
	quantity, err := strconv.ParseUint(quantityRaw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("quantity %q: %w", quantityRaw, err)
	}

	return &model.Part{
		PartNumber: partNumber,
		Name:       name,
		Details:    details,
		PriceCents: priceCents,
		Quantity:   uint32(quantity),
	}, nil
}
