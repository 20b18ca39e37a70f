package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePartValidation(t *testing.T) {
	h, _ := newTestCatalog(t, emptyAssocStore())

	rec := postJSON(t, h.CreatePart, "/v1/parts",
		`{"name": "Oil Filter", "price": "19.999", "quantity": -1}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "part_number")
	assert.Contains(t, resp.Errors, "price")
	assert.Contains(t, resp.Errors, "quantity")
	assert.NotContains(t, resp.Errors, "name")
}

func TestCreatePart(t *testing.T) {
	h, mock := newTestCatalog(t, emptyAssocStore())

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO parts`)).
		WithArgs(sqlmock.AnyArg(), "FLT-001", "Oil Filter", "standard", int64(1990), uint32(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, h.CreatePart, "/v1/parts",
		`{"part_number": "FLT-001", "name": "Oil Filter", "details": "standard", "price": "19.90", "quantity": 100}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Price    string `json:"price"`
		Quantity uint32 `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Price round-trips as a fixed-point string, never a float.
	assert.Equal(t, "19.90", resp.Price)
	assert.Equal(t, uint32(100), resp.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func emptyAssocStore() *fakeAssocStore {
	return &fakeAssocStore{
		carModels: map[uuid.UUID]bool{},
		parts:     map[uuid.UUID]bool{},
		links:     map[[2]uuid.UUID]bool{},
	}
}
