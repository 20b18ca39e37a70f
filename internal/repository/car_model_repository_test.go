package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoparts/catalog/internal/model"
)

func newCarModelRepo(t *testing.T) (*CarModelRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCarModelRepo(db), mock
}

func TestCarModelGetByID(t *testing.T) {
	repo, mock := newCarModelRepo(t)
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "manufacturer", "year", "created_at", "updated_at"}).
		AddRow(id.String(), "Uno", "Fiat", 1998, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, manufacturer, year, created_at, updated_at`)).
		WithArgs(id.String()).
		WillReturnRows(rows)

	m, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "Uno", m.Name)
	assert.Equal(t, "Fiat", m.Manufacturer)
	assert.Equal(t, 1998, m.Year)
}

func TestCarModelGetByIDNotFound(t *testing.T) {
	repo, mock := newCarModelRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, manufacturer, year`)).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "manufacturer", "year", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrCarModelNotFound)
}

func TestCarModelSoftDelete(t *testing.T) {
	repo, mock := newCarModelRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE car_models SET deleted_at = CURRENT_TIMESTAMP`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), id))

	// Second delete touches zero rows: the tombstone filter in the
	// WHERE clause makes the repo report not-found.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE car_models SET deleted_at = CURRENT_TIMESTAMP`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SoftDelete(context.Background(), id), ErrCarModelNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarModelUpdateNotFound(t *testing.T) {
	repo, mock := newCarModelRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE car_models`)).
		WithArgs("Gol", "Volkswagen", 2005, id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.CarModel{ID: id, Name: "Gol", Manufacturer: "Volkswagen", Year: 2005})
	assert.ErrorIs(t, err, ErrCarModelNotFound)
}
