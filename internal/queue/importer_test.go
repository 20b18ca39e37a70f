package queue

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoparts/catalog/internal/model"
)

// fakePartCreator records created parts and can fail on demand.
type fakePartCreator struct {
	created []*model.Part
	failOn  string // part number that triggers a persistence error
}

func (f *fakePartCreator) Create(_ context.Context, p *model.Part) error {
	if p.PartNumber == f.failOn {
		return errors.New("duplicate part number")
	}
	f.created = append(f.created, p)
	return nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportPartsCSV(t *testing.T) {
	path := writeCSV(t, `part_number,name,details,price,quantity
FLT-001,Oil Filter,standard,19.90,100
BRK-200,Brake Pad,front axle,89.50,40
`)
	store := &fakePartCreator{}
	res, err := ImportPartsCSV(context.Background(), path, store)
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Created: 2, Failed: 0}, res)
	require.Len(t, store.created, 2)
	assert.Equal(t, "FLT-001", store.created[0].PartNumber)
	assert.Equal(t, int64(1990), store.created[0].PriceCents)
	assert.Equal(t, uint32(100), store.created[0].Quantity)
}

func TestImportPartsCSVSkipsBadRows(t *testing.T) {
	// Bad price, bad quantity, missing name, then one good row. A bad
	// row is logged and skipped, never aborts the rest of the file.
	path := writeCSV(t, `part_number,name,details,price,quantity
BAD-1,Thing,,not-a-price,5
BAD-2,Thing,,10.00,lots
BAD-3,,,10.00,5
OK-1,Spark Plug,,4.25,500
`)
	store := &fakePartCreator{}
	res, err := ImportPartsCSV(context.Background(), path, store)
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Created: 1, Failed: 3}, res)
	require.Len(t, store.created, 1)
	assert.Equal(t, "OK-1", store.created[0].PartNumber)
}

func TestImportPartsCSVPersistenceFailureIsPerRow(t *testing.T) {
	path := writeCSV(t, `part_number,name,details,price,quantity
DUP-1,First,,1.00,1
OK-2,Second,,2.00,2
`)
	store := &fakePartCreator{failOn: "DUP-1"}
	res, err := ImportPartsCSV(context.Background(), path, store)
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Created: 1, Failed: 1}, res)
}

func TestImportPartsCSVHeaderOrderIrrelevant(t *testing.T) {
	path := writeCSV(t, `quantity,price,details,name,part_number
7,3.50,rear,Wiper Blade,WPR-9
`)
	store := &fakePartCreator{}
	res, err := ImportPartsCSV(context.Background(), path, store)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, "WPR-9", store.created[0].PartNumber)
	assert.Equal(t, uint32(7), store.created[0].Quantity)
}

func TestImportPartsCSVMissingColumnFails(t *testing.T) {
	path := writeCSV(t, `part_number,name,details,price
X,Y,,1.00
`)
	_, err := ImportPartsCSV(context.Background(), path, &fakePartCreator{})
	assert.ErrorContains(t, err, "quantity")
}

func TestImportPartsCSVMissingFileFails(t *testing.T) {
	_, err := ImportPartsCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), &fakePartCreator{})
	assert.Error(t, err)
}
