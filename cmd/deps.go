package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-TourBookingService/internal/config"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/paypal"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/stripe"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// openDatabase подключается к PostgreSQL; при включенных метриках запросы замеряются
func openDatabase(cfg *config.Config, withMetrics bool) (*sql.DB, dbmetrics.DBExecutor, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if withMetrics {
		return db, dbmetrics.New(db, prometheus.DefaultRegisterer, cfg.Metrics.ServiceName), nil
	}
	return db, db, nil
}

// buildLoaders создает загрузчики SDK для включенных провайдеров
func buildLoaders(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *payment.Loaders {
	timeout := time.Duration(cfg.Payment.SDKLoadTimeout) * time.Second

	var loaders []*payment.Loader
	if cfg.PayPal.Enabled {
		client := paypal.NewClient(paypal.Config{
			ClientID:     cfg.PayPal.ClientID,
			ClientSecret: cfg.PayPal.ClientSecret,
			BaseURL:      cfg.PayPal.BaseURL,
			SDKURL:       cfg.PayPal.SDKURL,
			Currency:     cfg.Payment.Currency,
			Timeout:      time.Duration(cfg.PayPal.Timeout) * time.Second,
		}, log)
		loaders = append(loaders, payment.NewLoader(client, timeout, m, log))
	}
	if cfg.Stripe.Enabled {
		client := stripe.NewClient(stripe.Config{
			PublishableKey: cfg.Stripe.PublishableKey,
			SecretKey:      cfg.Stripe.SecretKey,
			BaseURL:        cfg.Stripe.BaseURL,
			SDKURL:         cfg.Stripe.SDKURL,
			Timeout:        time.Duration(cfg.Stripe.Timeout) * time.Second,
		}, log)
		loaders = append(loaders, payment.NewLoader(client, timeout, m, log))
	}

	return payment.NewLoaders(loaders...)
}
