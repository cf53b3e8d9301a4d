package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/LutherWJ/AlfredOrdering/internal/config"
	"github.com/LutherWJ/AlfredOrdering/internal/database"
	"github.com/LutherWJ/AlfredOrdering/internal/logger"
	"github.com/LutherWJ/AlfredOrdering/internal/messaging"
	"github.com/LutherWJ/AlfredOrdering/internal/services/catalog"
	"github.com/LutherWJ/AlfredOrdering/internal/services/customer"
	"github.com/LutherWJ/AlfredOrdering/internal/services/order"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 3000, "HTTP port")
		noBroker   = flag.Bool("no-broker", false, "Run without RabbitMQ (order.created events are skipped)")
	)
	flag.Parse()

	// Local development keeps secrets in .env; production sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("order-service")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting order service", requestID, map[string]interface{}{
		"port":     *port,
		"tax_rate": cfg.Ordering.TaxRate,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *port, *noBroker); err != nil {
		log.Error("service_failed", "Order service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, noBroker bool) error {
	requestID := logger.GenerateRequestID()

	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging unless running broker-less
	var publisher order.Publisher
	if !noBroker {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		publisher = messaging.NewPublisher(conn, log)
	}

	// Wire providers, the ordering engine and the HTTP layer
	service := order.NewService(
		catalog.NewPostgresProvider(db),
		customer.NewPostgresProvider(db),
		order.NewPostgresStore(db),
		publisher,
		order.Config{
			TaxRate:              cfg.Ordering.TaxRate,
			MaxExtraDepth:        cfg.Ordering.MaxExtraDepth,
			EnforceMaxSelectable: cfg.Ordering.EnforceMaxSelectable,
		},
		log,
	)
	handler := order.NewHandler(service, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Order service listening on port %d", port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
