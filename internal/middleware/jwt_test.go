package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoparts/catalog/internal/utils"
)

const testSecret = "unit-test-secret"

// invoke runs the JWTAuth middleware against a request carrying the
// given Authorization header and returns the recorder plus the
// principal the inner handler observed (uuid.Nil when it never ran).
func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uuid.UUID
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		seen, _ = PrincipalID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, seen := invoke(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no authorization header provided")
	assert.Equal(t, uuid.Nil, seen)
}

func TestJWTAuthBadScheme(t *testing.T) {
	rec, _ := invoke(t, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token format")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := invoke(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", uuid.New(), 5)
	require.NoError(t, err)
	rec, _ := invoke(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsPrincipal(t *testing.T) {
	uid := uuid.New()
	tok, err := utils.NewAccessToken(testSecret, uid, 5)
	require.NoError(t, err)

	rec, seen := invoke(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uid, seen)
}
