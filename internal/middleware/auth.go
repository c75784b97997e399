package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/tokens"
)

// Context keys set by the auth gate.
const (
	CtxUserID   = "user_id"
	CtxSellerID = "seller_id"
)

// RequireUser verifies the auth-token header against the shared secret and
// attaches the user id to the context. Missing header is 401, anything wrong
// with the token itself is 400, matching the buyer-facing API contract.
func RequireUser(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(tokens.HeaderName)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}
			userID, err := tokens.ParseUserToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid token.")
			}
			c.Set(CtxUserID, userID)
			return next(c)
		}
	}
}

// RequireSeller is the seller variant: a syntactically valid token carrying a
// user claim instead of a seller claim is rejected with 403.
func RequireSeller(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(tokens.HeaderName)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}
			sellerID, err := tokens.ParseSellerToken(raw, secret)
			if err != nil {
				if userID, uerr := tokens.ParseUserToken(raw, secret); uerr == nil && userID != uuid.Nil {
					return echo.NewHTTPError(http.StatusForbidden, "Invalid seller token.")
				}
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid token.")
			}
			c.Set(CtxSellerID, sellerID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(CtxUserID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func SellerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(CtxSellerID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
