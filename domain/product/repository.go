package product

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "github.com/example/product-catalog/domain/product"

// mutableColumns are overwritten by Update. The id is never among them.
var mutableColumns = []string{"name", "description", "price", "available", "category"}

// Repository provides database operations for products.
type Repository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// Option configures a Repository.
type Option func(*Repository)

// WithTracerProvider makes the repository emit spans through tp instead of
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Repository) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{
		db:     db,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Migrate creates or updates the products table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Product{})
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Create inserts p and assigns its id. Any id already set on p is discarded
// and the price is rounded to PriceScale digits.
func (r *Repository) Create(ctx context.Context, p *Product) error {
	ctx, span := r.tracer.Start(ctx, "product.create")
	defer span.End()

	p.ID = 0
	p.Price = p.Price.Round(PriceScale)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		p.ID = 0
		return storageError(span, err)
	}

	span.SetAttributes(attribute.Int64("product.id", p.ID))
	return nil
}

// Update overwrites the row matching p.ID.
func (r *Repository) Update(ctx context.Context, p *Product) error {
	if p.ID == 0 {
		return newValidationError("Update called with empty ID field")
	}

	ctx, span := r.tracer.Start(ctx, "product.update", trace.WithAttributes(attribute.Int64("product.id", p.ID)))
	defer span.End()

	p.Price = p.Price.Round(PriceScale)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(p).Select(mutableColumns).Updates(p).Error
	})
	if err != nil {
		return storageError(span, err)
	}
	return nil
}

// Delete removes the row matching p.ID. Deleting an id that has no row is
// not an error.
func (r *Repository) Delete(ctx context.Context, p *Product) error {
	if p.ID == 0 {
		return newValidationError("Delete called with empty ID field")
	}

	ctx, span := r.tracer.Start(ctx, "product.delete", trace.WithAttributes(attribute.Int64("product.id", p.ID)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&Product{}, p.ID).Error
	})
	if err != nil {
		return storageError(span, err)
	}
	return nil
}

// Find retrieves a product by id. It returns nil, nil when no row matches.
func (r *Repository) Find(ctx context.Context, id int64) (*Product, error) {
	ctx, span := r.tracer.Start(ctx, "product.find", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	var p Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// All returns a query over every product.
func (r *Repository) All(ctx context.Context) *Query {
	return r.query(ctx, "product.all", nil)
}

// FindByName returns a query over products whose name equals name.
func (r *Repository) FindByName(ctx context.Context, name string) *Query {
	return r.query(ctx, "product.find_by_name", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("name = ?", name)
	})
}

// FindByCategory returns a query over products in category c.
func (r *Repository) FindByCategory(ctx context.Context, c Category) *Query {
	return r.query(ctx, "product.find_by_category", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("category = ?", c)
	})
}

// FindByAvailability returns a query over products with the given
// availability.
func (r *Repository) FindByAvailability(ctx context.Context, available bool) *Query {
	return r.query(ctx, "product.find_by_availability", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("available = ?", available)
	})
}

// FindByPrice returns a query over products priced exactly at price, which
// may be a decimal or anything ParsePrice accepts.
func (r *Repository) FindByPrice(ctx context.Context, price any) (*Query, error) {
	value, err := ParsePrice(price)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "product.find_by_price", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("price = ?", value)
	}), nil
}

func (r *Repository) query(ctx context.Context, name string, scope func(*gorm.DB) *gorm.DB) *Query {
	tx := r.db.WithContext(ctx).Model(&Product{})
	if scope != nil {
		tx = scope(tx)
	}
	return &Query{
		db:     tx.Session(&gorm.Session{}),
		ctx:    ctx,
		tracer: r.tracer,
		name:   name,
	}
}

func storageError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return &DataValidationError{Message: err.Error(), Err: err}
}
