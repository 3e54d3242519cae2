package product

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/product-catalog/domain/product"
)

const hatJSON = `{"name":"Fedora","description":"A red hat","price":12.50,"available":true,"category":"CLOTHS"}`

func TestHandlers_CRUD(t *testing.T) {
	ctx := context.Background()
	m := startModule(t)

	created, err := m.createProduct(ctx, CreateProductRequest{Product: json.RawMessage(hatJSON)}, nil)
	require.NoError(t, err)
	id, ok := created.Product["id"].(int64)
	require.True(t, ok)
	assert.Equal(t, "12.5", created.Product["price"])

	got, err := m.getProduct(ctx, GetProductRequest{ID: id}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Fedora", got.Product["name"])

	updated, err := m.updateProduct(ctx, UpdateProductRequest{
		ID:      id,
		Product: json.RawMessage(`{"name":"Bowler","description":"","price":"9.99","available":false,"category":"cloths"}`),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bowler", updated.Product["name"])
	assert.Equal(t, false, updated.Product["available"])

	list, err := m.listProducts(ctx, ListProductsRequest{Name: "Bowler"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Products, 1)
	assert.Equal(t, id, list.Products[0]["id"])

	deleted, err := m.deleteProduct(ctx, DeleteProductRequest{ID: id}, nil)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	deleted, err = m.deleteProduct(ctx, DeleteProductRequest{ID: id}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, deleted.Deleted)
}

func TestHandlers_Errors(t *testing.T) {
	ctx := context.Background()
	m := startModule(t)

	_, err := m.createProduct(ctx, CreateProductRequest{}, nil)
	assert.True(t, product.IsValidationError(err))

	_, err = m.createProduct(ctx, CreateProductRequest{Product: json.RawMessage(`{"name":"Fedora"}`)}, nil)
	assert.EqualError(t, err, "Invalid product: missing description")

	_, err = m.getProduct(ctx, GetProductRequest{ID: 321}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.updateProduct(ctx, UpdateProductRequest{ID: 321, Product: json.RawMessage(hatJSON)}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := m.listProducts(ctx, ListProductsRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.NotNil(t, list.Products)
}
