package dto

import (
	"time"

	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
// Price travels as a string to keep 3-decimal precision exact.
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock"`
	MinLevel int    `json:"minLevel"`
	Unit     string `json:"unit"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	price, err := types.NewMoneyFromString(r.Price)
	if err != nil {
		return nil, err
	}
	p := product.New(r.Name, r.Category, price, r.Unit)
	p.Stock = r.Stock
	p.MinLevel = r.MinLevel
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock"`
	MinLevel int    `json:"minLevel"`
	Unit     string `json:"unit"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	price, err := types.NewMoneyFromString(r.Price)
	if err != nil {
		return err
	}
	p.Name = r.Name
	p.Category = r.Category
	p.Price = price
	p.Stock = r.Stock
	p.MinLevel = r.MinLevel
	p.Unit = r.Unit
	return nil
}

// ProductListQuery carries catalog filter query parameters.
type ProductListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"lowStock"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// ToFilter converts query parameters to a domain filter.
func (q *ProductListQuery) ToFilter() product.ListFilter {
	return product.ListFilter{
		Search:       q.Search,
		Category:     q.Category,
		LowStockOnly: q.LowStock,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
}

// AdjustStockRequest changes warehouse stock by a signed delta.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	MinLevel  int       `json:"minLevel"`
	Unit      string    `json:"unit,omitempty"`
	LowStock  bool      `json:"lowStock"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		Price:     types.FormatMoney(p.Price),
		Stock:     p.Stock,
		MinLevel:  p.MinLevel,
		Unit:      p.Unit,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		Status:    string(p.Status),
	}
}
