// Package producttest builds fake products for tests.
package producttest

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/example/product-catalog/domain/product"
)

var (
	names = []string{
		"Hat", "Pants", "Shirt", "Apple", "Banana",
		"Pots", "Towels", "Ford", "Chevy", "Hammer", "Wrench",
	}
	descriptions = []string{
		"A red hat", "Comfortable cotton pants", "Fresh from the orchard",
		"Stainless steel cookware", "Reliable and affordable", "Heavy duty",
	}
)

// Factory produces products with plausible random fields.
type Factory struct {
	rnd *rand.Rand
}

// New returns a Factory seeded with seed so runs are reproducible.
func New(seed uint64) *Factory {
	return &Factory{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Product returns a new unpersisted product.
func (f *Factory) Product() *product.Product {
	categories := product.Categories()
	return &product.Product{
		Name:        names[f.rnd.IntN(len(names))],
		Description: descriptions[f.rnd.IntN(len(descriptions))],
		Price:       decimal.New(f.rnd.Int64N(100000-50)+50, -2),
		Available:   f.rnd.IntN(2) == 1,
		Category:    categories[f.rnd.IntN(len(categories))],
	}
}

// Batch returns n new unpersisted products.
func (f *Factory) Batch(n int) []*product.Product {
	out := make([]*product.Product, n)
	for i := range out {
		out[i] = f.Product()
	}
	return out
}
