package api

import (
	"context"
	_ "embed"
	"strconv"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/product-catalog/domain/product"
	"github.com/example/product-catalog/modules/product"
)

//go:embed static/index.html
var indexHTML []byte

// Catalog is the set of product use cases the HTTP layer drives.
type Catalog interface {
	Create(ctx context.Context, data any) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, data any) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f product.Filter) ([]domain.Product, error)
}

var _ Catalog = (*product.Service)(nil)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	catalog Catalog
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(catalog Catalog) *Handlers {
	return &Handlers{catalog: catalog}
}

// Index serves the administration page.
func (h *Handlers) Index(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(indexHTML)
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "OK"})
}

// CreateProduct handles POST /products.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	data, err := domain.DecodeJSON(c.Body())
	if err != nil {
		return err
	}

	p, err := h.catalog.Create(c.UserContext(), data)
	if err != nil {
		return err
	}

	c.Location(c.BaseURL() + "/products/" + strconv.FormatInt(p.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(p.Serialize())
}

// ListProducts handles GET /products with optional filters.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext(), product.Filter{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		Available: c.Query("available"),
		Price:     c.Query("price"),
	})
	if err != nil {
		return err
	}

	records := make([]domain.Record, 0, len(products))
	for i := range products {
		records = append(records, products[i].Serialize())
	}
	return c.JSON(records)
}

// GetProduct handles GET /products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	p, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p.Serialize())
}

// UpdateProduct handles PUT /products/:id.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	data, err := domain.DecodeJSON(c.Body())
	if err != nil {
		return err
	}

	p, err := h.catalog.Update(c.UserContext(), id, data)
	if err != nil {
		return err
	}
	return c.JSON(p.Serialize())
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}
