package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/imageurl"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/middleware"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func cartWithImageURLs(c echo.Context, view *service.CartView) *service.CartView {
	for i := range view.Items {
		view.Items[i].Image = imageurl.FromRequest(c, view.Items[i].Image)
	}
	return view
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, _ := middleware.UserID(c)
	view, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return respondErr(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cartWithImageURLs(c, view))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  uint      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	userID, _ := middleware.UserID(c)
	view, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondErr(c, l, "add_to_cart_error", err)
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
	})
	return c.JSON(http.StatusOK, cartWithImageURLs(c, view))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  uint      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	userID, _ := middleware.UserID(c)
	view, err := h.Svc.UpdateQuantity(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondErr(c, l, "update_cart_error", err)
	}
	return c.JSON(http.StatusOK, cartWithImageURLs(c, view))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	userID, _ := middleware.UserID(c)
	view, err := h.Svc.RemoveItem(ctx, userID, productID)
	if err != nil {
		return respondErr(c, l, "remove_from_cart_error", err)
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})
	return c.JSON(http.StatusOK, cartWithImageURLs(c, view))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, _ := middleware.UserID(c)
	view, err := h.Svc.Clear(ctx, userID)
	if err != nil {
		return respondErr(c, l, "clear_cart_error", err)
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return c.JSON(http.StatusOK, view)
}
