package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

func protectedEcho(roles ...string) *echo.Echo {
	e := echo.New()
	mws := []echo.MiddlewareFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		mws = append(mws, RequireRole(roles...))
	}
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, mws...)
	return e
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	e := protectedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	e := protectedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "CLIENT", 5)
	require.NoError(t, err)

	e := protectedEcho()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
	assert.Contains(t, rec.Body.String(), `"role":"CLIENT"`)
}

func TestRequireRoleBlocksWrongRole(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "CLIENT", 5)
	require.NoError(t, err)

	e := protectedEcho("RECEPTIONIST")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "RECEPTIONIST", 5)
	require.NoError(t, err)

	e := protectedEcho("RECEPTIONIST")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
