package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductSearch filtros de búsqueda de productos. Term hace match por
// contención (sin distinguir mayúsculas) contra nombre, descripción o SKU
// (OR lógico); el resto de filtros se combinan con AND.
type ProductSearch struct {
	Term       string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *bool
}

// ProductPage parámetros de paginación. SortBy admite name, price,
// createddate y stock (sin distinguir mayúsculas); cualquier otro valor cae a
// name. Number y Size deben ser >= 1.
type ProductPage struct {
	Number     int
	Size       int
	SortBy     string
	SortDesc   bool
	CategoryID *int64
}

// ProductStats agregados del catálogo de productos. AveragePrice se calcula
// solo sobre filas activas.
type ProductStats struct {
	Total        int64
	Active       int64
	OutOfStock   int64
	AveragePrice decimal.Decimal
}

// ProductRepository puerto de persistencia para Product (DIP). Las consultas
// de dominio están implícitamente acotadas a filas activas.
type ProductRepository interface {
	Repository[*entity.Product]

	// GetByCategory productos activos de una categoría, ordenados por nombre.
	GetByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	// Search búsqueda combinada, ordenada por nombre.
	Search(ctx context.Context, f ProductSearch) ([]*entity.Product, error)
	// GetPaginated página de productos más el total del conjunto filtrado
	// (pre-paginación), para que la metadata sea consistente con el filtro.
	// ErrInvalidInput si Number o Size no son positivos.
	GetPaginated(ctx context.Context, p ProductPage) ([]*entity.Product, int64, error)
	GetBySku(ctx context.Context, sku string) (*entity.Product, error)
	// GetLowStock productos activos con stock <= threshold, ascendente por stock.
	GetLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	// GetByPriceRange productos activos con precio en [min, max], ascendente por precio.
	GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)
	// UpdateStock fija el stock y el ModifiedDate; ErrNotFound si el producto no existe.
	UpdateStock(ctx context.Context, productID int64, newStock int) error
	GetStatistics(ctx context.Context) (*ProductStats, error)
}
