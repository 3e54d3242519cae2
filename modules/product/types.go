package product

import (
	"encoding/json"

	"github.com/example/product-catalog/domain/product"
)

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Product json.RawMessage `json:"product"`
}

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	ID int64 `json:"id"`
}

// ListProductsRequest is the request for listing products.
type ListProductsRequest = Filter

// UpdateProductRequest is the request for updating a product.
type UpdateProductRequest struct {
	ID      int64           `json:"id"`
	Product json.RawMessage `json:"product"`
}

// DeleteProductRequest is the request for deleting a product.
type DeleteProductRequest struct {
	ID int64 `json:"id"`
}

// ProductResponse wraps a serialized product.
type ProductResponse struct {
	Product product.Record `json:"product"`
}

// ListProductsResponse is the response containing a list of products.
type ListProductsResponse struct {
	Products []product.Record `json:"products"`
	Total    int              `json:"total"`
}

// DeleteProductResponse is the response after deleting a product.
type DeleteProductResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}
