package imageurl

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx(hdr map[string]string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "http://shop.local/api/products", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromRequest(t *testing.T) {
	c := newCtx(nil)
	require.Equal(t, "http://shop.local/uploads/1-2-a.png", FromRequest(c, "uploads/1-2-a.png"))
}

func TestFromRequestEmptyPath(t *testing.T) {
	require.Empty(t, FromRequest(newCtx(nil), ""))
}

func TestFromRequestForwardedHeadersWin(t *testing.T) {
	c := newCtx(map[string]string{
		"X-Forwarded-Proto": "https",
		"X-Forwarded-Host":  "cdn.example.com",
	})
	require.Equal(t, "https://cdn.example.com/uploads/a.png", FromRequest(c, "uploads/a.png"))
}
