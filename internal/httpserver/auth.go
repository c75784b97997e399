package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/middleware"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_user")

	var req struct {
		Name     string `json:"name"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.RegisterUser(ctx, req.Name, req.Mobile, req.Password)
	if err != nil {
		return respondErr(c, l, "create_user_error", err)
	}

	publish(c, h.Producer, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"mobile": user.Mobile,
	})
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) CheckUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.check_user")

	var req struct {
		Mobile string `json:"mobile"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("check_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	action, err := h.Svc.CheckUser(ctx, req.Mobile)
	if err != nil {
		return respondErr(c, l, "check_user_error", err)
	}

	if action == service.ActionSignup {
		return c.JSON(http.StatusOK, echo.Map{
			"action":  action,
			"message": "looks like you are new here please sign up to continue",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"action":  action,
		"message": "give password",
	})
}

// GetUser returns the authenticated user, hash omitted by the model's json
// tags.
func (h *AuthHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.get_user")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	user, err := h.Svc.GetUser(ctx, userID)
	if err != nil {
		return respondErr(c, l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, user)
}
