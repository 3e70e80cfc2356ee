package main

import (
	"ssplt10-backend/config"
	"ssplt10-backend/db"
	apphttp "ssplt10-backend/http"
	"ssplt10-backend/http/handlers"
	"ssplt10-backend/logger"
	"ssplt10-backend/services"

	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Load and validate configuration; missing gateway credentials are fatal
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Configuration error: %v", err)
	}
	logger.SetLevel(logger.LevelForMode(cfg.Mode))

	// Initialize Kafka producer (non-fatal, disabled when unconfigured)
	services.InitProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	// Connect to the registration store. Without it the service still
	// verifies payments; reconciliation degrades to log-only.
	var store services.RegistrationStore
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Registration store unavailable, reconciliation degraded to log-only: %v", err)
		} else {
			store = services.NewPostgresRegistrationStore(conn)
		}
	} else {
		logger.Warn("SUPABASE_DB_URL not set, reconciliation degraded to log-only")
	}

	gateway := services.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	reconciler := services.NewReconciler(store)
	notifier := services.NewPaymentNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)

	payments := handlers.NewPaymentHandler(gateway, reconciler, store, notifier,
		cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.Mode)
	webhook := handlers.NewWebhookHandler(cfg.RazorpayWebhookSecret, reconciler)
	export := handlers.NewExportHandler(store)

	apphttp.SetupRoutes(cfg, payments, webhook, export)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting on :%s (mode=%s)", cfg.Port, cfg.Mode)
		logger.Fatal("%v", netHttp.ListenAndServe(":"+cfg.Port, nil))
	}()

	<-sigChan
	logger.Info("Shutdown signal received, closing Kafka producer...")

	if err := services.CloseProducer(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
