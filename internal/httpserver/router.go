package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prasadvm/storekart/internal/config"
	"github.com/prasadvm/storekart/internal/middleware"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/otp"
	"github.com/prasadvm/storekart/internal/repo"
	"github.com/prasadvm/storekart/internal/service"
	"github.com/prasadvm/storekart/internal/service/search"
	"github.com/prasadvm/storekart/internal/upload"
)

// Deps carries everything the HTTP layer needs. Producer, ES and Sender may
// be nil: the corresponding integrations degrade to no-ops.
type Deps struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Repo     *repo.GormRepo
	Uploads  *upload.Store
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Sender   otp.Sender
}

func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestLogger(d.Logger))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d Deps) {
	secret := []byte(d.Cfg.JWT_SECRET)
	indexer := &search.Indexer{ES: d.ES, Index: d.Cfg.ES_INDEX}

	authSvc := &service.AuthService{Repo: d.Repo, JWTSecret: secret}
	catalogSvc := &service.CatalogService{Repo: d.Repo}
	cartSvc := &service.CartService{Repo: d.Repo, MissingPolicy: d.Cfg.CartMissingProductPolicy}
	orderSvc := &service.OrderService{Repo: d.Repo}
	analyticsSvc := &service.AnalyticsService{Repo: d.Repo}
	addressSvc := &service.AddressService{Repo: d.Repo}

	auth := &AuthHTTP{Svc: authSvc, Producer: d.Producer}
	verify := &VerifyHTTP{Svc: authSvc, Sender: d.Sender, Producer: d.Producer}
	products := &ProductHTTP{
		Svc:      catalogSvc,
		Uploads:  d.Uploads,
		Producer: d.Producer,
		Indexer:  indexer,
		ES:       d.ES,
		ESIndex:  d.Cfg.ES_INDEX,
	}
	seller := &SellerHTTP{
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Orders:    orderSvc,
		Analytics: analyticsSvc,
		Uploads:   d.Uploads,
		Producer:  d.Producer,
		Indexer:   indexer,
	}
	cart := &CartHTTP{Svc: cartSvc, Producer: d.Producer}
	orders := &OrderHTTP{Svc: orderSvc, Producer: d.Producer}
	address := &AddressHTTP{Svc: addressSvc}

	requireUser := middleware.RequireUser(secret)
	requireSeller := middleware.RequireSeller(secret)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.Static("/"+upload.PublicPrefix, d.Cfg.UploadDir)

	api := e.Group("/api")

	ag := api.Group("/auth")
	ag.POST("/createuser", auth.CreateUser)
	ag.POST("/checkuser", auth.CheckUser)
	ag.GET("/user", auth.GetUser, requireUser)

	vg := api.Group("/verify")
	vg.POST("/verifyotp", verify.VerifyOTP)
	vg.POST("/verifyotpseller", verify.VerifyOTPSeller)
	vg.POST("/login", verify.Login)
	vg.POST("/sellerlogin", verify.SellerLogin)

	pg := api.Group("/products")
	pg.GET("", products.GetProducts)
	pg.GET("/search", products.Search)
	pg.GET("/category/:category", products.GetByCategory)
	pg.GET("/:id", products.GetProduct)
	pg.POST("/addproduct", products.AddProduct)

	sg := api.Group("/seller")
	sg.POST("/createseller", seller.CreateSeller)
	sg.POST("/checkseller", seller.CheckSeller)
	sg.GET("/products", seller.Products, requireSeller)
	sg.PUT("/products/:id", seller.UpdateProduct, requireSeller)
	sg.DELETE("/products/:id", seller.DeleteProduct, requireSeller)
	sg.GET("/orders", seller.SellerOrders, requireSeller)
	sg.GET("/analytics", seller.SellerAnalytics, requireSeller)

	cg := api.Group("/cart", requireUser)
	cg.GET("", cart.GetCart)
	cg.POST("/add", cart.AddItem)
	cg.PUT("/update", cart.UpdateQuantity)
	cg.DELETE("/remove/:productId", cart.RemoveItem)
	cg.POST("/clear", cart.Clear)

	og := api.Group("/orders")
	og.POST("/create", orders.CreateOrder)
	og.GET("", orders.ListOrders)
	og.GET("/:id", orders.GetOrder)
	og.PUT("/:id/status", orders.UpdateStatus)

	adg := api.Group("/address", requireUser)
	adg.POST("/add", address.Add)
	adg.GET("", address.List)
	adg.PUT("/:id/set-default", address.SetDefault)
	adg.PUT("/:id", address.Update)
	adg.DELETE("/:id", address.Delete)
}
