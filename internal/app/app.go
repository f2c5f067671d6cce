// Package app wires configuration, storage, domain services, and the HTTP
// server into a runnable application.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/petrodist/fuel-orders/internal/domain/coupon"
	"github.com/petrodist/fuel-orders/internal/domain/customer"
	"github.com/petrodist/fuel-orders/internal/domain/order"
	"github.com/petrodist/fuel-orders/internal/domain/product"
	"github.com/petrodist/fuel-orders/internal/handler"
	"github.com/petrodist/fuel-orders/internal/notification"
	"github.com/petrodist/fuel-orders/internal/repository"
	"github.com/petrodist/fuel-orders/pkg/health"
	"github.com/petrodist/fuel-orders/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	var (
		customerStore customer.Repository
		orderStore    order.Repository
		couponRules   []coupon.Rule
	)

	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, health.DatabaseCheck(pool))

		customerStore = repository.NewCustomerRepository(pool)
		orderStore = repository.NewOrderRepository(pool)

		// Coupon rules are seeded reference data; a missing or empty table
		// falls back to the builtin rule set.
		rules, err := repository.NewCouponRepository(pool).ListActive(ctx)
		if err != nil {
			lg.Warn("Loading coupon rules failed, using builtin set", zap.Error(err))
		} else {
			couponRules = rules
		}
	} else {
		lg.Info("No database URL configured, using in-memory stores")
		customerStore = repository.NewMemoryCustomerStore()
		orderStore = repository.NewMemoryOrderStore()
	}

	prices := product.DefaultPriceList()
	coupons := coupon.NewEngine(couponRules)
	notifier := notification.NewLogNotifier(lg.Named("notify"))

	customerService := customer.NewService(customerStore, notifier)
	orderService := order.NewService(customerStore, prices, coupons, orderStore, notifier)

	h := handler.NewHandler(customerService, customerStore, orderService, orderStore, prices)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", h.Routes()))

	instrumented := otelhttp.NewHandler(mux, "fuel-orders-api",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	healthSvc.SetReady(true)

	// Graceful shutdown: flip readiness, drain, then stop the listener.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
