package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/product-catalog/config"
	"github.com/example/product-catalog/modules/api"
	"github.com/example/product-catalog/modules/product"
	"github.com/example/product-catalog/telemetry"
)

func main() {
	log.Println("=== Product Catalog Service ===")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Tracing)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		flushTracing(shutdownTracing, cfg.ShutdownTimeout)
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Register modules with the framework.
	// The api module declares product as a dependency, so mono starts it first.
	productModule := product.NewModule(cfg.Database, logger.WithModule("product"))
	app.Register(productModule)
	app.Register(api.NewModule(cfg.Server, productModule, logger.WithModule("api")))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		flushTracing(shutdownTracing, cfg.ShutdownTimeout)
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
			"tracing": func(ctx context.Context) error {
				return shutdownTracing(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// flushTracing exports buffered spans before an early exit.
func flushTracing(shutdown telemetry.ShutdownFunc, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("Failed to flush traces: %v", err)
	}
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("  - Database driver: %s", cfg.Database.Driver)
	log.Printf("  - Trace exporter:  %s", cfg.Tracing.Exporter)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Server.Port)
	log.Println("  GET    /                 - Administration page")
	log.Println("  GET    /health           - Health check")
	log.Println("  GET    /products         - List products (?name=&category=&available=&price=)")
	log.Println("  POST   /products         - Create a product")
	log.Println("  GET    /products/:id     - Read a product")
	log.Println("  PUT    /products/:id     - Update a product")
	log.Println("  DELETE /products/:id     - Delete a product")
	log.Println("")
	log.Println("Available Services (via NATS request-reply):")
	log.Println("  - services.product.{create,get,list,update,delete}")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
