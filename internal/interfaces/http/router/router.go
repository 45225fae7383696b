package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers the router wires up
type Handlers struct {
	System   *handler.SystemHandler
	Product  *handler.ProductHandler
	Catalog  *handler.CatalogHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Address  *handler.AddressHandler
	Payment  *handler.PaymentHandler
}

// New builds the gin engine with the full middleware chain and all
// storefront routes mounted under /api/v1. Back-office routes live
// under /api/v1/admin; access control for them sits in the gateway in
// front of this service.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Session(cfg.Session))

	if cfg.HTTP.RateLimitEnabled && cfg.HTTP.RateLimitRequests > 0 {
		window := cfg.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, window)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/healthz", h.System.Health)
	engine.GET("/readyz", h.System.Ready)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/system/info", h.System.Info)

		products := v1.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/featured", h.Product.Featured)
			products.GET("/:slug", h.Product.GetBySlug)
			products.GET("/:slug/reviews", h.Review.List)
			products.POST("/:slug/reviews", h.Review.Create)
		}

		v1.GET("/categories", h.Catalog.ListCategories)
		v1.GET("/brands", h.Catalog.ListBrands)

		cart := v1.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.POST("/items", h.Cart.AddItem)
			cart.PUT("/items/:product_id", h.Cart.UpdateItem)
			cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
			cart.DELETE("", h.Cart.Clear)
		}

		v1.POST("/checkout", h.Checkout.Checkout)

		orders := v1.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.GET("/:number", h.Order.Get)
			orders.POST("/:number/cancel", h.Order.Cancel)
			orders.GET("/:number/payment", h.Payment.GetByOrder)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", h.Payment.Initiate)
			payments.GET("", h.Payment.History)
			payments.POST("/callback", h.Payment.Callback)
			payments.POST("/:payment_id/refunds", h.Payment.RequestRefund)
			payments.GET("/:payment_id/refunds", h.Payment.ListRefunds)
		}

		addresses := v1.Group("/addresses")
		{
			addresses.GET("", h.Address.List)
			addresses.POST("", h.Address.Create)
			addresses.PUT("/:id", h.Address.Update)
			addresses.POST("/:id/default", h.Address.SetDefault)
			addresses.DELETE("/:id", h.Address.Delete)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/products", h.Product.Create)
			admin.PUT("/products/:id", h.Product.Update)
			admin.POST("/products/:id/variants", h.Product.AddVariant)
			admin.POST("/categories", h.Catalog.CreateCategory)
			admin.POST("/brands", h.Catalog.CreateBrand)
			admin.POST("/reviews/:id/approve", h.Review.Approve)
			admin.POST("/reviews/:id/reject", h.Review.Reject)
			admin.POST("/orders/:number/ship", h.Order.Ship)
			admin.POST("/orders/:number/deliver", h.Order.Deliver)
			admin.POST("/payments/:payment_id/complete", h.Payment.Complete)
			admin.POST("/refunds/:refund_id/complete", h.Payment.CompleteRefund)
			admin.POST("/refunds/:refund_id/reject", h.Payment.RejectRefund)
		}
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
