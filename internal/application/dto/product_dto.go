package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	SKU         string          `json:"sku" validate:"required,min=1,max=50"`
	ImageURL    string          `json:"image_url" validate:"max=500"`
	CategoryID  *int64          `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"image_url"`
	CategoryID  *int64           `json:"category_id"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	InStock      bool            `json:"in_stock"`
	SKU          string          `json:"sku"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	CreatedDate  time.Time       `json:"created_date"`
	ModifiedDate time.Time       `json:"modified_date"`
	IsActive     bool            `json:"is_active"`
}

// ProductListResponse página de productos con metadatos.
type ProductListResponse struct {
	Items []*ProductResponse `json:"items"`
	Meta  PageResponse       `json:"meta"`
}

// ProductStatsResponse agregados del catálogo de productos.
type ProductStatsResponse struct {
	Total        int64           `json:"total"`
	Active       int64           `json:"active"`
	OutOfStock   int64           `json:"out_of_stock"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

// ToProductResponse convierte la entidad a su representación de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		InStock:      p.InStock(),
		SKU:          p.SKU,
		ImageURL:     p.ImageURL,
		CategoryID:   p.CategoryID,
		CreatedDate:  p.CreatedDate,
		ModifiedDate: p.ModifiedDate,
		IsActive:     p.IsActive,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
