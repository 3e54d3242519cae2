package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/example/product-catalog/config"
	domain "github.com/example/product-catalog/domain/product"
	"github.com/example/product-catalog/modules/product"
)

// Module is the HTTP driving adapter for the catalog.
type Module struct {
	app           *fiber.App
	cfg           config.Server
	productModule *product.Module
	logger        types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module serving the catalog of productModule.
func NewModule(cfg config.Server, productModule *product.Module, logger types.Logger) *Module {
	return &Module{
		cfg:           cfg,
		productModule: productModule,
		logger:        logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies. The product module
// is started first so its service exists when Start runs.
func (m *Module) Dependencies() []string {
	return []string{"product"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, _ mono.ServiceContainer) {
	switch dependency {
	case "product":
		m.logger.Debug("Product services available", "module", dependency)
	}
}

// Start builds the Fiber application and starts listening.
func (m *Module) Start(_ context.Context) error {
	svc := m.productModule.GetService()
	if svc == nil {
		return fmt.Errorf("product service not initialized")
	}

	m.app = newApp(svc, m.cfg, m.logger)

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr()); err != nil {
			errCh <- err
		}
	}()

	// Wait briefly to catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.cfg.Addr())
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "server not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr": m.cfg.Addr(),
		},
	}
}

// newApp assembles the Fiber application around catalog.
func newApp(catalog Catalog, cfg config.Server, log types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Product Catalog",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(tracing(otel.GetTracerProvider()))

	registerRoutes(app, NewHandlers(catalog))
	return app
}

// registerRoutes sets up all HTTP routes.
func registerRoutes(app *fiber.App, h *Handlers) {
	app.Get("/", h.Index)
	app.Get("/health", h.HealthCheck)

	products := app.Group("/products")
	products.Get("/", h.ListProducts)
	products.Post("/", requireJSON, h.CreateProduct)
	products.Get("/:id<int>", h.GetProduct)
	products.Put("/:id<int>", requireJSON, h.UpdateProduct)
	products.Delete("/:id<int>", h.DeleteProduct)
}

// errorHandler maps domain errors to status codes and writes the JSON
// error body.
func errorHandler(log types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var validationErr *domain.DataValidationError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
			message = validationErr.Error()
		case errors.Is(err, product.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
		} else {
			log.Debug("HTTP request rejected", "code", code, "path", c.Path(), "message", message)
		}

		return c.Status(code).JSON(ErrorResponse{
			Status:  code,
			Error:   utils.StatusMessage(code),
			Message: message,
		})
	}
}
