package product

import (
	"context"

	"github.com/go-monolith/mono"

	"github.com/example/product-catalog/domain/product"
)

// createProduct handles the product.create service request.
func (m *Module) createProduct(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	data, err := product.DecodeJSON(req.Product)
	if err != nil {
		return ProductResponse{}, err
	}

	p, err := m.service.Create(ctx, data)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{Product: p.Serialize()}, nil
}

// getProduct handles the product.get service request.
func (m *Module) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{Product: p.Serialize()}, nil
}

// listProducts handles the product.list service request.
func (m *Module) listProducts(ctx context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, err := m.service.List(ctx, req)
	if err != nil {
		return ListProductsResponse{}, err
	}

	response := ListProductsResponse{
		Products: make([]product.Record, 0, len(products)),
		Total:    len(products),
	}
	for i := range products {
		response.Products = append(response.Products, products[i].Serialize())
	}
	return response, nil
}

// updateProduct handles the product.update service request.
func (m *Module) updateProduct(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	data, err := product.DecodeJSON(req.Product)
	if err != nil {
		return ProductResponse{}, err
	}

	p, err := m.service.Update(ctx, req.ID, data)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{Product: p.Serialize()}, nil
}

// deleteProduct handles the product.delete service request.
func (m *Module) deleteProduct(ctx context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteProductResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteProductResponse{Deleted: true, ID: req.ID}, nil
}
