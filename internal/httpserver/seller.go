package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/middleware"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
	"github.com/prasadvm/storekart/internal/service/search"
	"github.com/prasadvm/storekart/internal/upload"
)

type SellerHTTP struct {
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Analytics *service.AnalyticsService
	Uploads   *upload.Store
	Producer  *mykafka.Producer
	Indexer   *search.Indexer
}

func (h *SellerHTTP) CreateSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.create")

	var req struct {
		CompanyName   string `json:"companyname"`
		Owner         string `json:"owner"`
		OperatingCity string `json:"operatingcity"`
		Mobile        string `json:"mobile"`
		Password      string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_seller_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	seller, err := h.Auth.RegisterSeller(ctx, req.CompanyName, req.Owner, req.OperatingCity, req.Mobile, req.Password)
	if err != nil {
		return respondErr(c, l, "create_seller_error", err)
	}

	publish(c, h.Producer, mykafka.TopicUserEvents, seller.ID.String(), map[string]any{
		"type":     "seller_registered",
		"sellerID": seller.ID,
		"mobile":   seller.Mobile,
	})
	return c.JSON(http.StatusOK, seller)
}

func (h *SellerHTTP) CheckSeller(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.check")

	var req struct {
		Mobile string `json:"mobile"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("check_seller_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	action, sellerID, err := h.Auth.CheckSeller(ctx, req.Mobile)
	if err != nil {
		return respondErr(c, l, "check_seller_error", err)
	}

	if action == service.ActionSignup {
		return c.JSON(http.StatusOK, echo.Map{
			"action":  action,
			"message": "looks like you are new here please sign up to continue",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"action":   action,
		"message":  "give password",
		"sellerId": sellerID,
	})
}

// Products lists the authenticated seller's own catalog.
func (h *SellerHTTP) Products(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.products")

	sellerID, ok := middleware.SellerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	products, err := h.Catalog.ListBySeller(ctx, sellerID)
	if err != nil {
		return respondErr(c, l, "seller_products_error", err)
	}
	return c.JSON(http.StatusOK, withImageURLs(c, products))
}

// UpdateProduct takes the same multipart form as AddProduct; fields left
// empty keep their stored value, and a new image replaces the old path.
func (h *SellerHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.update_product")

	sellerID, _ := middleware.SellerID(c)
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	var price *float64
	if v := c.FormValue("price"); v != "" {
		parsed, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			l.Warn("update_product_error", "status", 400, "error", perr)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid price")
		}
		price = &parsed
	}

	var imagePath string
	if file, ferr := c.FormFile("image"); ferr == nil {
		imagePath, err = h.Uploads.Save(file)
		if err != nil {
			l.Error("update_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
	}

	product, err := h.Catalog.UpdateProduct(ctx, sellerID, productID, func(p *models.Product) {
		if v := c.FormValue("name"); v != "" {
			p.Name = v
		}
		if price != nil {
			p.Price = *price
		}
		if v := c.FormValue("productDescription"); v != "" {
			p.Description = v
		}
		if v := c.FormValue("about"); v != "" {
			p.About = v
		}
		if v := c.FormValue("category"); v != "" {
			p.Category = v
		}
		if imagePath != "" {
			p.Image = imagePath
		}
	})
	if err != nil {
		return respondErr(c, l, "update_product_error", err)
	}

	h.Indexer.TryIndex(ctx, product)
	publish(c, h.Producer, mykafka.TopicProductEvents, product.ID.String(), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": withImageURL(c, *product),
	})
}

func (h *SellerHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.delete_product")

	sellerID, _ := middleware.SellerID(c)
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Catalog.DeleteProduct(ctx, sellerID, productID); err != nil {
		return respondErr(c, l, "delete_product_error", err)
	}

	h.Indexer.TryDelete(ctx, productID)
	publish(c, h.Producer, mykafka.TopicProductEvents, productID.String(), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func (h *SellerHTTP) SellerAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.analytics")

	sellerID, ok := middleware.SellerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	analytics, err := h.Analytics.Analytics(ctx, sellerID)
	if err != nil {
		return respondErr(c, l, "seller_analytics_error", err)
	}
	return c.JSON(http.StatusOK, analytics)
}

func (h *SellerHTTP) SellerOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.orders")

	sellerID, ok := middleware.SellerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	orders, err := h.Orders.SellerOrders(ctx, sellerID)
	if err != nil {
		return respondErr(c, l, "seller_orders_error", err)
	}

	out := make([]service.SellerOrder, len(orders))
	for i, order := range orders {
		order.Order = orderWithImageURLs(c, order.Order)
		out[i] = order
	}
	return c.JSON(http.StatusOK, out)
}
