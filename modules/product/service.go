package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/product-catalog/domain/product"
)

// ErrNotFound is returned when no product has the requested id.
var ErrNotFound = errors.New("product not found")

// Filter holds the raw list filters taken from a query string. The first
// non-empty field, in declaration order, selects the lookup.
type Filter struct {
	Name      string `json:"name,omitempty"`
	Category  string `json:"category,omitempty"`
	Available string `json:"available,omitempty"`
	Price     string `json:"price,omitempty"`
}

// Service implements the catalog use cases on top of the repository.
type Service struct {
	repo   *product.Repository
	logger types.Logger
}

// NewService creates a new product service.
func NewService(repo *product.Repository, logger types.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create deserializes data into a new product and persists it.
func (s *Service) Create(ctx context.Context, data any) (*product.Product, error) {
	p, err := new(product.Product).Deserialize(data)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", "id", p.ID, "name", p.Name)
	return p, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p, nil
}

// Update replaces the mutable fields of an existing product with data.
func (s *Service) Update(ctx context.Context, id int64, data any) (*product.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := p.Deserialize(data); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", "id", p.ID)
	return p, nil
}

// Delete removes an existing product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p); err != nil {
		return err
	}

	s.logger.Info("Product deleted", "id", id)
	return nil
}

// List returns the products selected by f.
func (s *Service) List(ctx context.Context, f Filter) ([]product.Product, error) {
	q, err := s.query(ctx, f)
	if err != nil {
		return nil, err
	}
	return q.All()
}

func (s *Service) query(ctx context.Context, f Filter) (*product.Query, error) {
	switch {
	case f.Name != "":
		return s.repo.FindByName(ctx, f.Name), nil
	case f.Category != "":
		category, ok := product.ParseCategory(f.Category)
		if !ok {
			return nil, &product.DataValidationError{
				Message: fmt.Sprintf("Invalid category: %s", f.Category),
			}
		}
		return s.repo.FindByCategory(ctx, category), nil
	case f.Available != "":
		return s.repo.FindByAvailability(ctx, product.ParseAvailability(f.Available)), nil
	case f.Price != "":
		return s.repo.FindByPrice(ctx, f.Price)
	default:
		return s.repo.All(ctx), nil
	}
}

// Ping checks the underlying database.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
