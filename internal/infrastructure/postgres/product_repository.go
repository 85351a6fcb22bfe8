package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSpec mapeo SQL de Product para la capa genérica.
var productSpec = tableSpec[*entity.Product]{
	table: "products",
	insertCols: []string{
		"name", "description", "price", "stock", "sku", "image_url",
		"category_id", "created_date", "modified_date", "is_active",
	},
	updateCols: []string{
		"name", "description", "price", "stock", "sku", "image_url",
		"category_id", "modified_date", "is_active",
	},
	insertVals: func(p *entity.Product) []any {
		return []any{p.Name, p.Description, p.Price, p.Stock, p.SKU, p.ImageURL,
			p.CategoryID, p.CreatedDate, p.ModifiedDate, p.IsActive}
	},
	updateVals: func(p *entity.Product) []any {
		return []any{p.Name, p.Description, p.Price, p.Stock, p.SKU, p.ImageURL,
			p.CategoryID, p.ModifiedDate, p.IsActive}
	},
	newRow: func() (*entity.Product, []any) {
		p := &entity.Product{}
		return p, []any{&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU,
			&p.ImageURL, &p.CategoryID, &p.CreatedDate, &p.ModifiedDate, &p.IsActive}
	},
}

// sortColumns claves de ordenamiento admitidas en GetPaginated (minúsculas).
// Cualquier otra clave cae a name.
var sortColumns = map[string]string{
	"name":        "name",
	"price":       "price",
	"createddate": "created_date",
	"stock":       "stock",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Extiende la capa genérica con consultas de dominio,
// todas acotadas a filas activas.
type ProductRepo struct {
	*Repo[*entity.Product]
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, log *logger.Logger) *ProductRepo {
	return &ProductRepo{Repo: newRepo(q, productSpec, log)}
}

// GetByCategory productos activos de una categoría, ordenados por nombre.
func (r *ProductRepo) GetByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE category_id = $1 AND is_active = TRUE ORDER BY name",
		r.selectList)
	return r.queryMany(ctx, "GetByCategory", query, categoryID)
}

// Search búsqueda combinada: Term contra nombre/descripción/SKU (OR, por
// contención, sin distinguir mayúsculas); los demás filtros en AND. Ordena por nombre.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductSearch) ([]*entity.Product, error) {
	conds := []string{"is_active = TRUE"}
	var args []any
	if f.Term != "" {
		args = append(args, "%"+f.Term+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d)", n, n, n))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if f.InStock != nil {
		if *f.InStock {
			conds = append(conds, "stock > 0")
		} else {
			conds = append(conds, "stock = 0")
		}
	}
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s ORDER BY name",
		r.selectList, strings.Join(conds, " AND "))
	return r.queryMany(ctx, "Search", query, args...)
}

// GetPaginated página de productos y total del conjunto filtrado. El total se
// calcula pre-paginación sobre el mismo filtro, así la metadata es consistente.
// ErrInvalidInput si Number o Size no son positivos (se valida antes de tocar la DB).
func (r *ProductRepo) GetPaginated(ctx context.Context, p repository.ProductPage) ([]*entity.Product, int64, error) {
	if p.Number < 1 || p.Size < 1 {
		return nil, 0, fmt.Errorf("%w: pageNumber y pageSize deben ser >= 1", domain.ErrInvalidInput)
	}
	col, ok := sortColumns[strings.ToLower(p.SortBy)]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}

	where := "is_active = TRUE"
	var args []any
	if p.CategoryID != nil {
		args = append(args, *p.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM products WHERE " + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, r.wrap("GetPaginated", err)
	}

	args = append(args, p.Size, (p.Number-1)*p.Size)
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d",
		r.selectList, where, col, dir, len(args)-1, len(args))
	items, err := r.queryMany(ctx, "GetPaginated", query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetBySku producto activo por SKU; nil si no existe.
func (r *ProductRepo) GetBySku(ctx context.Context, sku string) (*entity.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE sku = $1 AND is_active = TRUE", r.selectList)
	p, _, err := r.queryOne(ctx, "GetBySku", query, sku)
	return p, err
}

// GetLowStock productos activos con stock <= threshold, ascendente por stock.
func (r *ProductRepo) GetLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	if threshold <= 0 {
		threshold = entity.DefaultLowStockThreshold
	}
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE stock <= $1 AND is_active = TRUE ORDER BY stock",
		r.selectList)
	return r.queryMany(ctx, "GetLowStock", query, threshold)
}

// GetByPriceRange productos activos con precio en [min, max], ascendente por precio.
func (r *ProductRepo) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE price >= $1 AND price <= $2 AND is_active = TRUE ORDER BY price",
		r.selectList)
	return r.queryMany(ctx, "GetByPriceRange", query, min, max)
}

// UpdateStock fija el stock y sella modified_date. ErrNotFound si no existe la fila.
func (r *ProductRepo) UpdateStock(ctx context.Context, productID int64, newStock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, modified_date = now() AT TIME ZONE 'utc' WHERE id = $1`,
		productID, newStock,
	)
	if err != nil {
		return r.wrap("UpdateStock", err)
	}
	if cmd.RowsAffected() == 0 {
		r.log.Warn().Int64("id", productID).Msg("update stock: producto no encontrado")
		return domain.ErrNotFound
	}
	r.log.Info().Int64("id", productID).Int("stock", newStock).Msg("stock actualizado")
	return nil
}

// GetStatistics agregados del catálogo. AveragePrice solo sobre filas activas.
func (r *ProductRepo) GetStatistics(ctx context.Context) (*repository.ProductStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                     AS total,
	    COUNT(*) FILTER (WHERE is_active)                            AS active,
	    COUNT(*) FILTER (WHERE is_active AND stock = 0)              AS out_of_stock,
	    COALESCE(AVG(price) FILTER (WHERE is_active), 0)             AS average_price
	FROM products`
	var s repository.ProductStats
	err := r.q.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.OutOfStock, &s.AveragePrice)
	if err != nil {
		return nil, r.wrap("GetStatistics", err)
	}
	return &s, nil
}
