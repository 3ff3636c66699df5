// Command main is the entry point for the Ripple API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ripple/internal/config"
	"ripple/internal/observability"
	"ripple/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing before any request handling
	if cfg.TracingEnabled {
		shutdownTracing, tracingErr := observability.InitTracing(observability.TracingConfig{
			ServiceName:  "ripple-api",
			Environment:  cfg.Env,
			Enabled:      true,
			Exporter:     cfg.TracingExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TraceSampleRatio,
		})
		if tracingErr != nil {
			log.Fatalf("Failed to initialize tracing: %v", tracingErr)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := shutdownTracing(ctx); shutdownErr != nil {
				log.Printf("Tracing shutdown error: %v", shutdownErr)
			}
		}()
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
