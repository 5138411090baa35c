package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinitrack/clinical-record-service/internal/clinical"
	"github.com/clinitrack/clinical-record-service/internal/db"
	"github.com/clinitrack/clinical-record-service/internal/http"
	"github.com/clinitrack/clinical-record-service/internal/messaging"
	"github.com/clinitrack/clinical-record-service/internal/record"
	"github.com/clinitrack/clinical-record-service/internal/telemetry"
)

func main() {
	log.Println("clinical-record-service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry first so the DB and HTTP layers pick up the global providers
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, otelCfg)
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			provider.Shutdown(shutdownCtx)
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize metrics: %v", err)
		metrics = nil
	}

	store, err := buildStore()
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}

	markers, err := loadMarkers()
	if err != nil {
		log.Fatalf("Failed to load critical markers: %v", err)
	}
	log.Printf("Critical markers: %v", markers)

	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will be skipped: %v", err)
		publisher = nil
	}
	defer publisher.Close()

	service := clinical.NewService(store, publisher, markers, metrics)
	router := http.SetupRouter(service, metrics)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := &nethttp.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	log.Println("✓ Server stopped")
}

// buildStore selects the persistence engine. The in-memory store is the
// default; set STORE_BACKEND=postgres to run against PostgreSQL.
func buildStore() (record.Store, error) {
	backend := os.Getenv("STORE_BACKEND")
	if backend == "" || backend == "memory" {
		log.Println("Using in-memory record store")
		return record.NewMemoryStore(), nil
	}

	database, err := db.Connect()
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		return nil, err
	}
	log.Println("Using PostgreSQL record store")
	return record.NewRepository(database), nil
}

// loadMarkers reads the critical vocabulary file when configured,
// otherwise falls back to the built-in defaults
func loadMarkers() (clinical.Markers, error) {
	path := os.Getenv("CRITICAL_MARKERS_FILE")
	if path == "" {
		return clinical.DefaultMarkers(), nil
	}
	return clinical.LoadMarkers(path)
}
