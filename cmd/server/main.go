package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	orderapp "github.com/storefront/backend/internal/application/order"
	paymentapp "github.com/storefront/backend/internal/application/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/gateway"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	addressRepo := persistence.NewGormShippingAddressRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	refundRepo := persistence.NewGormRefundRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Payment gateway
	paymentGateway := gateway.NewHostedGateway(cfg.Gateway, log)
	if !paymentGateway.Configured() {
		log.Warn("Payment gateway not configured; online payments will return a degraded session")
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo, reviewRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, orderRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	checkoutService := checkoutapp.NewCheckoutService(txScope, checkoutPricing(cfg, log))
	orderService := orderapp.NewOrderService(orderRepo, txScope)
	addressService := orderapp.NewAddressService(addressRepo, txScope)
	paymentService := paymentapp.NewPaymentService(paymentRepo, refundRepo, orderRepo, paymentGateway, txScope)

	// HTTP layer
	engine := router.New(cfg, log, router.Handlers{
		System:   handler.NewSystemHandler(db, cfg.App.Name, version),
		Product:  handler.NewProductHandler(productService),
		Catalog:  handler.NewCatalogHandler(productService),
		Review:   handler.NewReviewHandler(reviewService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Address:  handler.NewAddressHandler(addressService),
		Payment:  handler.NewPaymentHandler(paymentService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// checkoutPricing builds the shipping rules from configuration, falling
// back to the standard rules when the configured amounts do not parse
func checkoutPricing(cfg *config.Config, log *zap.Logger) checkoutapp.Pricing {
	freeAbove, err := decimal.NewFromString(cfg.Checkout.FreeShippingAbove)
	if err != nil {
		log.Warn("Invalid checkout.free_shipping_above, using default",
			zap.String("value", cfg.Checkout.FreeShippingAbove))
		return checkoutapp.DefaultPricing()
	}
	flatFee, err := decimal.NewFromString(cfg.Checkout.FlatShippingFee)
	if err != nil {
		log.Warn("Invalid checkout.flat_shipping_fee, using default",
			zap.String("value", cfg.Checkout.FlatShippingFee))
		return checkoutapp.DefaultPricing()
	}
	return checkoutapp.Pricing{
		FreeShippingAbove: freeAbove,
		FlatShippingFee:   flatFee,
	}
}
