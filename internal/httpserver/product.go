package httpserver

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/imageurl"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
	"github.com/prasadvm/storekart/internal/service/search"
	"github.com/prasadvm/storekart/internal/upload"
	"github.com/prasadvm/storekart/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Uploads  *upload.Store
	Producer *mykafka.Producer
	Indexer  *search.Indexer
	ES       *elasticsearch.Client
	ESIndex  string
}

// withImageURL rewrites the stored relative path into an absolute URL for
// the caller.
func withImageURL(c echo.Context, p models.Product) models.Product {
	p.Image = imageurl.FromRequest(c, p.Image)
	return p
}

func withImageURLs(c echo.Context, products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = withImageURL(c, p)
	}
	return out
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return respondErr(c, l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, withImageURLs(c, products))
}

func (h *ProductHTTP) GetByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_by_category")

	products, err := h.Svc.ListByCategory(ctx, c.Param("category"))
	if err != nil {
		return respondErr(c, l, "get_by_category_error", err)
	}
	return c.JSON(http.StatusOK, withImageURLs(c, products))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return respondErr(c, l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, withImageURL(c, *product))
}

// AddProduct takes a multipart form: the image lands on disk, the row keeps
// the relative path.
func (h *ProductHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add_product")

	sellerID, err := uuid.Parse(c.FormValue("sellerId"))
	if err != nil {
		l.Warn("add_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid seller ID")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		l.Warn("add_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid price")
	}

	var imagePath string
	if file, ferr := c.FormFile("image"); ferr == nil {
		imagePath, err = h.Uploads.Save(file)
		if err != nil {
			l.Error("add_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
	}

	product := models.Product{
		SellerID:    sellerID,
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("productDescription"),
		About:       c.FormValue("about"),
		Category:    c.FormValue("category"),
		Image:       imagePath,
	}
	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		return respondErr(c, l, "add_product_error", err)
	}

	h.Indexer.TryIndex(ctx, &product)
	publish(c, h.Producer, mykafka.TopicProductEvents, product.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product added successfully",
		"product": withImageURL(c, product),
	})
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search unavailable")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.ESIndex, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": withImageURLs(c, products),
		"meta": map[string]any{
			"page":     page,
			"size":     limit,
			"has_prev": page > 1,
			"has_next": int64(from+limit) < total,
		},
	})
}
