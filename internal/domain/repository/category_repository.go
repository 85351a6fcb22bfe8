package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryStats agregados del catálogo de categorías.
type CategoryStats struct {
	Total        int64
	Active       int64
	WithProducts int64
	Empty        int64
}

// CategoryRepository puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Repository[*entity.Category]

	// GetWithProducts carga la categoría con solo sus productos activos; nil si no existe.
	GetWithProducts(ctx context.Context, id int64) (*entity.Category, error)
	// GetActive categorías activas ordenadas por display order.
	GetActive(ctx context.Context) ([]*entity.Category, error)
	GetOrderedByDisplayOrder(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	// GetWithProductCounts categorías con sus productos activos cargados para conteo.
	GetWithProductCounts(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// NameExists valida unicidad del nombre antes de insertar/editar;
	// excludeID (opcional, 0 = sin exclusión) descarta la entidad en edición.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	// GetAllWithProducts categorías activas con al menos un producto activo.
	GetAllWithProducts(ctx context.Context) ([]*entity.Category, error)
	// GetEmpty categorías activas sin productos activos.
	GetEmpty(ctx context.Context) ([]*entity.Category, error)
	GetStatistics(ctx context.Context) (*CategoryStats, error)
	// UpdateDisplayOrders aplica un batch de cambios de orden en una sola
	// transacción. IDs inexistentes se saltan sin error; devuelve cuántas
	// filas se actualizaron para que el caller detecte aplicación parcial.
	UpdateDisplayOrders(ctx context.Context, orders map[int64]int) (int64, error)
}
