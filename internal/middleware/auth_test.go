package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/prasadvm/storekart/internal/tokens"
)

var testSecret = []byte("test-secret")

func doAuth(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(tokens.HeaderName, token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, h(c)
}

func TestRequireUserMissingToken(t *testing.T) {
	_, err := doAuth(t, RequireUser(testSecret), "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Access denied. No token provided.", he.Message)
}

func TestRequireUserBadToken(t *testing.T) {
	_, err := doAuth(t, RequireUser(testSecret), "garbage")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "Invalid token.", he.Message)
}

func TestRequireUserWrongSecret(t *testing.T) {
	token, err := tokens.SignUserToken(uuid.New(), []byte("other-secret"))
	require.NoError(t, err)

	_, err = doAuth(t, RequireUser(testSecret), token)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRequireUserValid(t *testing.T) {
	id := uuid.New()
	token, err := tokens.SignUserToken(id, testSecret)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(tokens.HeaderName, token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireUser(testSecret)(func(c echo.Context) error {
		got, ok := UserID(c)
		require.True(t, ok)
		require.Equal(t, id, got)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSellerRejectsUserToken(t *testing.T) {
	token, err := tokens.SignUserToken(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = doAuth(t, RequireSeller(testSecret), token)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, he.Code)
	require.Equal(t, "Invalid seller token.", he.Message)
}

func TestRequireSellerValid(t *testing.T) {
	id := uuid.New()
	token, err := tokens.SignSellerToken(id, testSecret)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(tokens.HeaderName, token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireSeller(testSecret)(func(c echo.Context) error {
		got, ok := SellerID(c)
		require.True(t, ok)
		require.Equal(t, id, got)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
}

func TestRequireSellerMissingToken(t *testing.T) {
	_, err := doAuth(t, RequireSeller(testSecret), "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
