// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/admin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/infrastructure/storage/kv"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"backend":     cfg.Storage.Backend,
	}).Infof("Starting %s", cfg.App.Name)

	// Persisted store: survives restarts, holds catalog, cart,
	// credentials and settings.
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer store.Close()

	// Session store: in-memory, holds the last order and the admin
	// session. Gone on restart, which is the point.
	session := kv.NewMemoryStore()
	defer session.Close()

	notifier := notification.NewLogNotifier(log)

	catalogService := catalog.NewService(store)
	if err := catalogService.SeedDefaults(); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	adminService := admin.NewService(
		store,
		session,
		auth.NewPasswordManager(cfg.Admin.BcryptCost),
		auth.NewJWTManager(cfg.Admin.SessionSecret, cfg.App.Name, cfg.Admin.SessionExpiry),
	)
	if err := adminService.SeedCredentials(cfg.Admin.DefaultUsername, cfg.Admin.DefaultPassword); err != nil {
		log.Fatalf("Failed to seed admin credentials: %v", err)
	}

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		log.Fatalf("Invalid tax rate %q: %v", cfg.Pricing.TaxRate, err)
	}
	defaultShipping, err := decimal.NewFromString(cfg.Pricing.DefaultShipping)
	if err != nil {
		log.Fatalf("Invalid default shipping %q: %v", cfg.Pricing.DefaultShipping, err)
	}

	cartStore := cart.NewStore(store)
	calculator := pricing.NewCalculator(taxRate)
	materializer := order.NewMaterializer(
		cartStore,
		catalogService,
		calculator,
		checkout.NewValidator(),
		session,
		notifier,
	)

	server := http.NewServer(cfg, log, store, &routes.Services{
		Catalog:         catalogService,
		Cart:            cartStore,
		Calculator:      calculator,
		Materializer:    materializer,
		Admin:           adminService,
		Notifier:        notifier,
		DefaultShipping: defaultShipping,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}
}

// openStore opens the persisted key-value backend selected by config.
func openStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "pebble":
		return kv.NewPebbleStore(cfg.Storage.PebblePath)
	case "redis":
		return kv.NewRedisStore(kv.RedisOptions{
			Addr:      cfg.Storage.RedisAddr,
			Password:  cfg.Storage.RedisPassword,
			DB:        cfg.Storage.RedisDB,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
	case "memory":
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
