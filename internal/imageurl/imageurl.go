package imageurl

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// FromRequest turns a stored relative image path into an absolute URL using
// the request's protocol and host. Paths are stored relative so the API can
// move hosts without rewriting rows; X-Forwarded-* wins when a proxy sits in
// front.
func FromRequest(c echo.Context, imagePath string) string {
	if imagePath == "" {
		return ""
	}

	proto := c.Request().Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = c.Scheme()
	}
	host := c.Request().Header.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Request().Host
	}
	return fmt.Sprintf("%s://%s/%s", proto, host, imagePath)
}
