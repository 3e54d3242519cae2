package product

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/example/product-catalog/config"
	"github.com/example/product-catalog/domain/product"
	"github.com/example/product-catalog/telemetry"
)

// Module owns the catalog database and provides product services.
type Module struct {
	cfg     config.Database
	db      *gorm.DB
	repo    *product.Repository
	service *Service
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new product module.
func NewModule(cfg config.Database, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.<module>.", so
// "create" becomes "services.product.create" on the bus.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createProduct,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateProduct,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteProduct,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	m.logger.Info("Registered services", "services", "services.product.{create,get,list,update,delete}")
	return nil
}

// Start connects to the database and creates the products table if needed.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Connecting to database", "driver", m.cfg.Driver)

	db, err := openDatabase(m.cfg)
	if err != nil {
		return err
	}
	m.db = db

	if err := telemetry.RegisterGORMCallbacks(m.db, otel.GetTracerProvider()); err != nil {
		return fmt.Errorf("failed to register tracing callbacks: %w", err)
	}

	m.repo = product.NewRepository(m.db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.repo, m.logger)

	m.logger.Info("Product module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Database connection closed")
	return nil
}

// Health reports whether the database answers a ping.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	if err := m.service.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.cfg.Driver,
		},
	}
}

// GetService returns the product service. It is nil until Start succeeds.
func (m *Module) GetService() *Service {
	return m.service
}
