package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Description  string `json:"description" validate:"max=500"`
	Icon         string `json:"icon" validate:"max=200"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (campos opcionales).
type UpdateCategoryRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
}

// CategoryResponse representación de salida de una categoría.
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
	ProductCount int       `json:"product_count"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
	IsActive     bool      `json:"is_active"`
}

// CategoryStatsResponse agregados del catálogo de categorías.
type CategoryStatsResponse struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	WithProducts int64 `json:"with_products"`
	Empty        int64 `json:"empty"`
}

// ToCategoryResponse convierte la entidad a su representación de salida.
// ProductCount refleja solo los productos cargados por la consulta.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Icon:         c.Icon,
		DisplayOrder: c.DisplayOrder,
		ProductCount: len(c.Products),
		CreatedDate:  c.CreatedDate,
		ModifiedDate: c.ModifiedDate,
		IsActive:     c.IsActive,
	}
}
