package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory AssociationStore. It also counts calls so
// tests can assert that validation short-circuits before any store
// access.
type fakeStore struct {
	carModels map[uuid.UUID]bool
	parts     map[uuid.UUID]bool
	links     map[[2]uuid.UUID]bool
	calls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carModels: map[uuid.UUID]bool{},
		parts:     map[uuid.UUID]bool{},
		links:     map[[2]uuid.UUID]bool{},
	}
}

func (f *fakeStore) CarModelExists(_ context.Context, id uuid.UUID) (bool, error) {
	f.calls++
	return f.carModels[id], nil
}

func (f *fakeStore) PartExists(_ context.Context, id uuid.UUID) (bool, error) {
	f.calls++
	return f.parts[id], nil
}

func (f *fakeStore) LinkExists(_ context.Context, cm, p uuid.UUID) (bool, error) {
	f.calls++
	return f.links[[2]uuid.UUID{cm, p}], nil
}

func (f *fakeStore) AddLink(_ context.Context, cm, p uuid.UUID) error {
	f.calls++
	f.links[[2]uuid.UUID{cm, p}] = true
	return nil
}

func (f *fakeStore) RemoveLink(_ context.Context, cm, p uuid.UUID) error {
	f.calls++
	delete(f.links, [2]uuid.UUID{cm, p})
	return nil
}

func TestAssociatePartialResolution(t *testing.T) {
	store := newFakeStore()
	cmA := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()
	store.carModels[cmA] = true
	store.parts[p1] = true
	// p2 exists nowhere, cmX is never created.
	cmX := uuid.New()

	r := NewLinkResolver(store)
	report, err := r.Associate(context.Background(),
		[]string{cmA.String(), cmX.String()},
		[]string{p1.String(), p2.String()})
	require.NoError(t, err)

	assert.True(t, report.Resolved())
	assert.Equal(t, []string{p1.String()}, report.Associated[cmA.String()])
	assert.Equal(t, []string{p2.String()}, report.NotFoundParts[cmA.String()])
	assert.Equal(t, []string{cmX.String()}, report.NotFoundCarModels)
	assert.True(t, store.links[[2]uuid.UUID{cmA, p1}])
}

func TestAssociateResolvedCarModelAlwaysKeyed(t *testing.T) {
	// A car model that resolves but matches zero parts still gets its
	// (empty) entries in both maps, so the caller can tell it apart
	// from a missing car model.
	store := newFakeStore()
	cm := uuid.New()
	p := uuid.New()
	store.carModels[cm] = true
	store.parts[p] = true

	r := NewLinkResolver(store)
	report, err := r.Associate(context.Background(), []string{cm.String()}, []string{p.String()})
	require.NoError(t, err)

	require.Contains(t, report.Associated, cm.String())
	require.Contains(t, report.NotFoundParts, cm.String())
	assert.Empty(t, report.NotFoundParts[cm.String()])
}

func TestAssociateIdempotent(t *testing.T) {
	store := newFakeStore()
	cm := uuid.New()
	p := uuid.New()
	store.carModels[cm] = true
	store.parts[p] = true

	r := NewLinkResolver(store)
	for i := 0; i < 2; i++ {
		report, err := r.Associate(context.Background(), []string{cm.String()}, []string{p.String()})
		require.NoError(t, err)
		// Re-running the same request reports the same outcome.
		assert.Equal(t, []string{p.String()}, report.Associated[cm.String()])
	}
	assert.Len(t, store.links, 1)
}

func TestAssociateMalformedIDIsNotFound(t *testing.T) {
	store := newFakeStore()
	cm := uuid.New()
	store.carModels[cm] = true
	p := uuid.New()
	store.parts[p] = true

	r := NewLinkResolver(store)
	report, err := r.Associate(context.Background(),
		[]string{cm.String(), "not-a-uuid"},
		[]string{p.String(), "also-bad"})
	require.NoError(t, err)

	assert.Equal(t, []string{"not-a-uuid"}, report.NotFoundCarModels)
	assert.Equal(t, []string{"also-bad"}, report.NotFoundParts[cm.String()])
}

func TestAssociateDuplicateMissingCarModelReportedOnce(t *testing.T) {
	store := newFakeStore()
	missing := uuid.New().String()

	r := NewLinkResolver(store)
	report, err := r.Associate(context.Background(),
		[]string{missing, missing},
		[]string{uuid.New().String()})
	require.NoError(t, err)

	assert.Equal(t, []string{missing}, report.NotFoundCarModels)
	assert.False(t, report.Resolved())
}

func TestAssociateEmptyListsRejectedBeforeStoreAccess(t *testing.T) {
	store := newFakeStore()
	r := NewLinkResolver(store)

	_, err := r.Associate(context.Background(), nil, []string{uuid.New().String()})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "car_model_ids")

	_, err = r.Associate(context.Background(), []string{uuid.New().String()}, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "part_ids")

	assert.Zero(t, store.calls, "validation must fail before touching the store")
}

func TestDisassociateClassifiesEachID(t *testing.T) {
	store := newFakeStore()
	cm := uuid.New()
	linked := uuid.New()
	unlinked := uuid.New()
	store.links[[2]uuid.UUID{cm, linked}] = true

	r := NewLinkResolver(store)
	report, err := r.Disassociate(context.Background(), cm,
		[]string{linked.String(), unlinked.String(), "garbage"})
	require.NoError(t, err)

	assert.Equal(t, []string{linked.String()}, report.Removed)
	assert.Equal(t, []string{unlinked.String(), "garbage"}, report.Invalid)
	assert.False(t, store.links[[2]uuid.UUID{cm, linked}])
}

func TestDisassociateTwice(t *testing.T) {
	store := newFakeStore()
	cm := uuid.New()
	p := uuid.New()
	store.links[[2]uuid.UUID{cm, p}] = true

	r := NewLinkResolver(store)
	first, err := r.Disassociate(context.Background(), cm, []string{p.String()})
	require.NoError(t, err)
	assert.Equal(t, []string{p.String()}, first.Removed)

	// The link is gone now, so the same id turns invalid.
	second, err := r.Disassociate(context.Background(), cm, []string{p.String()})
	require.NoError(t, err)
	assert.Empty(t, second.Removed)
	assert.Equal(t, []string{p.String()}, second.Invalid)
}

func TestDisassociateEmptyListIsSuccess(t *testing.T) {
	r := NewLinkResolver(newFakeStore())
	report, err := r.Disassociate(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Removed)
	assert.Empty(t, report.Invalid)
}
