package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías, incluida la validación
// de unicidad del nombre antes de insertar o editar.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// validateCategoryFields reglas de campo comunes a crear/actualizar.
func validateCategoryFields(name, description, icon string, displayOrder int) error {
	if name == "" || len(name) > entity.CategoryNameMaxLen {
		return fmt.Errorf("%w: nombre obligatorio, máx. %d caracteres", domain.ErrInvalidInput, entity.CategoryNameMaxLen)
	}
	if len(description) > entity.CategoryDescriptionMaxLen {
		return fmt.Errorf("%w: descripción máx. %d caracteres", domain.ErrInvalidInput, entity.CategoryDescriptionMaxLen)
	}
	if len(icon) > entity.CategoryIconMaxLen {
		return fmt.Errorf("%w: icon máx. %d caracteres", domain.ErrInvalidInput, entity.CategoryIconMaxLen)
	}
	if displayOrder < 0 {
		return fmt.Errorf("%w: display order no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea una categoría. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateCategoryFields(in.Name, in.Description, in.Icon, in.DisplayOrder); err != nil {
		return nil, err
	}
	taken, err := uc.repo.NameExists(ctx, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{
		Name:         in.Name,
		Description:  in.Description,
		Icon:         in.Icon,
		DisplayOrder: in.DisplayOrder,
	}
	if err := uc.repo.Add(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID; nil si no existe (alcance activo).
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil || category == nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// GetWithProducts categoría con sus productos activos; nil si no existe.
func (uc *CategoryUseCase) GetWithProducts(ctx context.Context, id int64) (*dto.CategoryResponse, []*dto.ProductResponse, error) {
	category, err := uc.repo.GetWithProducts(ctx, id)
	if err != nil || category == nil {
		return nil, nil, err
	}
	products := make([]*dto.ProductResponse, 0, len(category.Products))
	for _, p := range category.Products {
		products = append(products, dto.ToProductResponse(p))
	}
	return dto.ToCategoryResponse(category), products, nil
}

// Update actualiza una categoría. ErrNotFound si no existe; ErrDuplicate si el
// nuevo nombre ya lo usa otra categoría (la propia queda excluida del chequeo).
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != category.Name {
		taken, err := uc.repo.NameExists(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.DisplayOrder != nil {
		category.DisplayOrder = *in.DisplayOrder
	}
	if err := validateCategoryFields(category.Name, category.Description, category.Icon, category.DisplayOrder); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// Delete borra una categoría (lógico) y elimina físicamente sus productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List categorías ordenadas por display order.
func (uc *CategoryUseCase) List(ctx context.Context, includeInactive bool) ([]*dto.CategoryResponse, error) {
	items, err := uc.repo.GetOrderedByDisplayOrder(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, dto.ToCategoryResponse(c))
	}
	return out, nil
}

// ListWithCounts categorías con el conteo de productos activos.
func (uc *CategoryUseCase) ListWithCounts(ctx context.Context, includeInactive bool) ([]*dto.CategoryResponse, error) {
	items, err := uc.repo.GetWithProductCounts(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, dto.ToCategoryResponse(c))
	}
	return out, nil
}

// Reorder aplica un batch de display orders. Devuelve cuántas filas se
// actualizaron: los IDs inexistentes se saltan, así el caller puede detectar
// aplicación parcial comparando contra len(orders).
func (uc *CategoryUseCase) Reorder(ctx context.Context, orders map[int64]int) (int64, error) {
	for id, order := range orders {
		if order < 0 {
			return 0, fmt.Errorf("%w: display order negativo para la categoría %d", domain.ErrInvalidInput, id)
		}
	}
	return uc.repo.UpdateDisplayOrders(ctx, orders)
}

// Statistics agregados del catálogo de categorías.
func (uc *CategoryUseCase) Statistics(ctx context.Context) (*dto.CategoryStatsResponse, error) {
	s, err := uc.repo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryStatsResponse{
		Total:        s.Total,
		Active:       s.Active,
		WithProducts: s.WithProducts,
		Empty:        s.Empty,
	}, nil
}
