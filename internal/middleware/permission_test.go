package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader returns a fixed capability set, or an error, and counts
// how often it was consulted.
type fakeLoader struct {
	caps  map[string]bool
	err   error
	calls int
}

func (f *fakeLoader) CapabilitiesForUser(_ context.Context, _ uuid.UUID) (map[string]bool, error) {
	f.calls++
	return f.caps, f.err
}

func TestGateAuthorize(t *testing.T) {
	g := NewGate()

	allowed, _ := g.Authorize(http.MethodGet, ResourcePart, map[string]bool{"view_part": true})
	assert.True(t, allowed)

	allowed, reason := g.Authorize(http.MethodDelete, ResourcePart, map[string]bool{"view_part": true})
	assert.False(t, allowed)
	assert.Equal(t, deniedReason, reason)

	// Every denial uses the same fixed reason regardless of resource
	// or method, so responses leak nothing about the mapping.
	_, r1 := g.Authorize(http.MethodPost, ResourceCarModel, nil)
	_, r2 := g.Authorize(http.MethodPatch, ResourceUser, nil)
	assert.Equal(t, r1, r2)
}

func TestGateDefaultAllow(t *testing.T) {
	g := NewGate()

	// Unknown resource kind: allowed without any capability.
	allowed, _ := g.Authorize(http.MethodGet, "unknown_thing", nil)
	assert.True(t, allowed)

	// Known resource, unmapped method (users have no POST mapping).
	allowed, _ = g.Authorize(http.MethodPost, ResourceUser, nil)
	assert.True(t, allowed)
}

func gateRequest(t *testing.T, mw echo.MiddlewareFunc, method string, principal *uuid.UUID, paramID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	if principal != nil {
		c.Set(PrincipalKey, *principal)
	}
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestRequireCapabilityDenied(t *testing.T) {
	loader := &fakeLoader{caps: map[string]bool{"view_part": true}}
	mw := RequireCapability(NewGate(), loader, ResourcePart)
	uid := uuid.New()

	rec := gateRequest(t, mw, http.MethodDelete, &uid, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), deniedReason)
}

func TestRequireCapabilityAllowed(t *testing.T) {
	loader := &fakeLoader{caps: map[string]bool{"add_part": true}}
	mw := RequireCapability(NewGate(), loader, ResourcePart)
	uid := uuid.New()

	rec := gateRequest(t, mw, http.MethodPost, &uid, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCapabilityUnauthenticatedIs401(t *testing.T) {
	// Authentication failures outrank permission failures: with no
	// principal the loader must never be consulted.
	loader := &fakeLoader{caps: map[string]bool{"add_part": true}}
	mw := RequireCapability(NewGate(), loader, ResourcePart)

	rec := gateRequest(t, mw, http.MethodPost, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, loader.calls)
}

func TestRequireCapabilityLoaderError(t *testing.T) {
	loader := &fakeLoader{err: errors.New("db down")}
	mw := RequireCapability(NewGate(), loader, ResourcePart)
	uid := uuid.New()

	rec := gateRequest(t, mw, http.MethodGet, &uid, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireCapabilityFreshPerRequest(t *testing.T) {
	loader := &fakeLoader{caps: map[string]bool{"view_part": true}}
	mw := RequireCapability(NewGate(), loader, ResourcePart)
	uid := uuid.New()

	gateRequest(t, mw, http.MethodGet, &uid, "")
	gateRequest(t, mw, http.MethodGet, &uid, "")
	// One load per request: capability changes apply immediately.
	assert.Equal(t, 2, loader.calls)
}

func TestRequireCapabilityOrSelf(t *testing.T) {
	loader := &fakeLoader{caps: map[string]bool{}}
	mw := RequireCapabilityOrSelf(NewGate(), loader, ResourceUser, "id")
	uid := uuid.New()

	// Own record: allowed with zero capabilities, loader never asked.
	rec := gateRequest(t, mw, http.MethodGet, &uid, uid.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, loader.calls)

	// Someone else's record: the gate applies.
	other := uuid.New().String()
	rec = gateRequest(t, mw, http.MethodGet, &uid, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
