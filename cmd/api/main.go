package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mazajretail/shishapos-backend/api/routes"
	"github.com/mazajretail/shishapos-backend/internal/catalog"
	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/ledger"
	"github.com/mazajretail/shishapos-backend/internal/notifications"
	"github.com/mazajretail/shishapos-backend/internal/partners"
	"github.com/mazajretail/shishapos-backend/internal/reports"
	"github.com/mazajretail/shishapos-backend/internal/sales"
	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/config"
	"github.com/mazajretail/shishapos-backend/pkg/db"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
	"github.com/mazajretail/shishapos-backend/pkg/metrics"
	"github.com/mazajretail/shishapos-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.DB.AutoMigrate {
		if err := migrate.Run(dbClient); err != nil {
			logg.Error(context.Background(), "failed to migrate schema", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	st, err := store.New(dbClient, logg, cfg.Export.Dir, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create store", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(st, logg, cfg.Alerts.ThresholdOverride)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(st, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	salesService, err := sales.NewService(st, logg, checkoutMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}
	ledgerService, err := ledger.NewService(st, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	partnersService, err := partners.NewService(st, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create partners service", err)
		os.Exit(1)
	}
	notificationsService, err := notifications.NewService(st, inventoryService, ledgerService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(st, inventoryService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, routes.Services{
			Inventory:     inventoryService,
			Catalog:       catalogService,
			Sales:         salesService,
			Ledger:        ledgerService,
			Partners:      partnersService,
			Notifications: notificationsService,
			Reports:       reportsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
