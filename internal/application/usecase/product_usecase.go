package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de productos. Valida campos
// antes de tocar los repositorios y traduce entidades a DTOs de salida.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// validateProductFields reglas de campo comunes a crear/actualizar.
func validateProductFields(name, description, sku, imageURL string, price decimal.Decimal, stock int) error {
	if name == "" || len(name) > entity.ProductNameMaxLen {
		return fmt.Errorf("%w: nombre obligatorio, máx. %d caracteres", domain.ErrInvalidInput, entity.ProductNameMaxLen)
	}
	if len(description) > entity.ProductDescriptionMaxLen {
		return fmt.Errorf("%w: descripción máx. %d caracteres", domain.ErrInvalidInput, entity.ProductDescriptionMaxLen)
	}
	if sku == "" || len(sku) > entity.ProductSKUMaxLen {
		return fmt.Errorf("%w: SKU obligatorio, máx. %d caracteres", domain.ErrInvalidInput, entity.ProductSKUMaxLen)
	}
	if len(imageURL) > entity.ProductImageURLMaxLen {
		return fmt.Errorf("%w: image URL máx. %d caracteres", domain.ErrInvalidInput, entity.ProductImageURLMaxLen)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if price.Exponent() < -2 {
		return fmt.Errorf("%w: el precio admite máximo dos decimales", domain.ErrInvalidInput)
	}
	if stock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// checkCategory valida que la categoría exista y esté activa (si se indicó).
func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	ok, err := uc.categories.Exists(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, *categoryID)
	}
	return nil
}

// Create crea un producto. ErrDuplicate si el SKU ya está en uso.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(in.Name, in.Description, in.SKU, in.ImageURL, in.Price, in.Stock); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySku(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		SKU:         in.SKU,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	}
	if err := uc.repo.Add(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID; nil si no existe (alcance activo).
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetBySku obtiene un producto por SKU; nil si no existe.
func (uc *ProductUseCase) GetBySku(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySku(ctx, sku)
	if err != nil || product == nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update actualiza un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = in.CategoryID
	}
	if err := validateProductFields(product.Name, product.Description, product.SKU, product.ImageURL, product.Price, product.Stock); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete borra un producto (lógico). ErrNotFound si la fila física no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List página de productos con metadatos de paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest, categoryID *int64) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.repo.GetPaginated(ctx, repository.ProductPage{
		Number:     page.Page,
		Size:       page.Size,
		SortBy:     page.SortBy,
		SortDesc:   page.SortDesc,
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]*dto.ProductResponse, 0, len(items)),
		Meta:  dto.NewPageResponse(page.Page, page.Size, total),
	}
	for _, p := range items {
		out.Items = append(out.Items, dto.ToProductResponse(p))
	}
	return out, nil
}

// Search búsqueda combinada de productos, ordenada por nombre.
func (uc *ProductUseCase) Search(ctx context.Context, f repository.ProductSearch) ([]*dto.ProductResponse, error) {
	items, err := uc.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// UpdateStock fija el stock de un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id int64, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.repo.UpdateStock(ctx, id, newStock)
}

// LowStock productos activos con stock bajo el umbral (<=0 usa el default).
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold int) ([]*dto.ProductResponse, error) {
	items, err := uc.repo.GetLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Statistics agregados del catálogo de productos.
func (uc *ProductUseCase) Statistics(ctx context.Context) (*dto.ProductStatsResponse, error) {
	s, err := uc.repo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		Total:        s.Total,
		Active:       s.Active,
		OutOfStock:   s.OutOfStock,
		AveragePrice: s.AveragePrice,
	}, nil
}
