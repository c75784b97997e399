package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/middleware"
	"github.com/prasadvm/storekart/internal/service"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.add")

	var req service.AddressInput
	if err := c.Bind(&req); err != nil {
		l.Warn("add_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, _ := middleware.UserID(c)
	address, err := h.Svc.Add(ctx, userID, req)
	if err != nil {
		return respondErr(c, l, "add_address_error", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Address added successfully",
		"address": address,
	})
}

func (h *AddressHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	userID, _ := middleware.UserID(c)
	addresses, err := h.Svc.List(ctx, userID)
	if err != nil {
		return respondErr(c, l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, addresses)
}

func (h *AddressHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid address ID")
	}

	var req service.AddressInput
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, _ := middleware.UserID(c)
	address, err := h.Svc.Update(ctx, userID, id, req)
	if err != nil {
		return respondErr(c, l, "update_address_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Address updated successfully",
		"address": address,
	})
}

func (h *AddressHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid address ID")
	}

	userID, _ := middleware.UserID(c)
	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return respondErr(c, l, "delete_address_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Address deleted successfully"})
}

func (h *AddressHTTP) SetDefault(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.set_default")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("set_default_address_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid address ID")
	}

	userID, _ := middleware.UserID(c)
	address, err := h.Svc.SetDefault(ctx, userID, id)
	if err != nil {
		return respondErr(c, l, "set_default_address_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Default address updated",
		"address": address,
	})
}
