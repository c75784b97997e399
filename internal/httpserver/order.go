package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/imageurl"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func orderWithImageURLs(c echo.Context, order models.Order) models.Order {
	items := make([]models.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.Image = imageurl.FromRequest(c, item.Image)
		items[i] = item
	}
	order.Items = items
	return order
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req struct {
		UserID          uuid.UUID                `json:"userId"`
		Items           []service.OrderLineInput `json:"items"`
		TotalAmount     float64                  `json:"totalAmount"`
		ShippingAddress models.ShippingAddress   `json:"shippingAddress"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, service.CreateOrderInput{
		UserID:          req.UserID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return respondErr(c, l, "create_order_error", err)
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalAmount,
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order placed successfully",
		"order":   orderWithImageURLs(c, *order),
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := uuid.Parse(c.QueryParam("userId"))
	if err != nil {
		l.Warn("list_orders_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	orders, err := h.Svc.ListUserOrders(ctx, userID)
	if err != nil {
		return respondErr(c, l, "list_orders_error", err)
	}

	out := make([]models.Order, len(orders))
	for i, order := range orders {
		out[i] = orderWithImageURLs(c, order)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return respondErr(c, l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, orderWithImageURLs(c, *order))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return respondErr(c, l, "update_order_status_error", err)
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, orderWithImageURLs(c, *order))
}
