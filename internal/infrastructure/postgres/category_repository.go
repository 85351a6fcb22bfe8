package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// categorySpec mapeo SQL de Category para la capa genérica.
var categorySpec = tableSpec[*entity.Category]{
	table: "categories",
	insertCols: []string{
		"name", "description", "icon", "display_order",
		"created_date", "modified_date", "is_active",
	},
	updateCols: []string{
		"name", "description", "icon", "display_order",
		"modified_date", "is_active",
	},
	insertVals: func(c *entity.Category) []any {
		return []any{c.Name, c.Description, c.Icon, c.DisplayOrder,
			c.CreatedDate, c.ModifiedDate, c.IsActive}
	},
	updateVals: func(c *entity.Category) []any {
		return []any{c.Name, c.Description, c.Icon, c.DisplayOrder,
			c.ModifiedDate, c.IsActive}
	},
	newRow: func() (*entity.Category, []any) {
		c := &entity.Category{}
		return c, []any{&c.ID, &c.Name, &c.Description, &c.Icon, &c.DisplayOrder,
			&c.CreatedDate, &c.ModifiedDate, &c.IsActive}
	},
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx).
type CategoryRepo struct {
	*Repo[*entity.Category]
	products *ProductRepo // para cargar hijos en GetWithProducts*
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier, log *logger.Logger) *CategoryRepo {
	return &CategoryRepo{
		Repo:     newRepo(q, categorySpec, log),
		products: NewProductRepository(q, log),
	}
}

// GetWithProducts carga la categoría (alcance activo) con solo sus productos
// activos; nil si no existe.
func (r *CategoryRepo) GetWithProducts(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	c.Products, err = r.products.GetByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetActive categorías activas ordenadas por display order.
func (r *CategoryRepo) GetActive(ctx context.Context) ([]*entity.Category, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM categories WHERE is_active = TRUE ORDER BY display_order, name",
		r.selectList)
	return r.queryMany(ctx, "GetActive", query)
}

// GetOrderedByDisplayOrder categorías ordenadas por display order; con
// includeInactive incluye las borradas lógicamente.
func (r *CategoryRepo) GetOrderedByDisplayOrder(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories", r.selectList)
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	return r.queryMany(ctx, "GetOrderedByDisplayOrder", query+" ORDER BY display_order, name")
}

// GetWithProductCounts categorías con sus productos activos cargados (para conteo).
func (r *CategoryRepo) GetWithProductCounts(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	cats, err := r.GetOrderedByDisplayOrder(ctx, includeInactive)
	if err != nil || len(cats) == 0 {
		return cats, err
	}
	byID := make(map[int64]*entity.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	prods, err := r.products.Find(ctx, "category_id IS NOT NULL")
	if err != nil {
		return nil, err
	}
	for _, p := range prods {
		if c, ok := byID[*p.CategoryID]; ok {
			c.Products = append(c.Products, p)
		}
	}
	return cats, nil
}

// GetByName categoría activa por nombre exacto; nil si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE name = $1 AND is_active = TRUE", r.selectList)
	c, _, err := r.queryOne(ctx, "GetByName", query, name)
	return c, err
}

// NameExists valida unicidad del nombre; excludeID=0 no excluye nada.
func (r *CategoryRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2 AND is_active = TRUE)`,
		name, excludeID,
	).Scan(&ok)
	if err != nil {
		return false, r.wrap("NameExists", err)
	}
	return ok, nil
}

// GetAllWithProducts categorías activas con al menos un producto activo.
func (r *CategoryRepo) GetAllWithProducts(ctx context.Context) ([]*entity.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM categories c
		WHERE c.is_active = TRUE
		  AND EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id AND p.is_active = TRUE)
		ORDER BY c.display_order, c.name`, r.selectList)
	return r.queryMany(ctx, "GetAllWithProducts", query)
}

// GetEmpty categorías activas sin productos activos.
func (r *CategoryRepo) GetEmpty(ctx context.Context) ([]*entity.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM categories c
		WHERE c.is_active = TRUE
		  AND NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id AND p.is_active = TRUE)
		ORDER BY c.display_order, c.name`, r.selectList)
	return r.queryMany(ctx, "GetEmpty", query)
}

// GetStatistics agregados de categorías. WithProducts y Empty particionan las activas.
func (r *CategoryRepo) GetStatistics(ctx context.Context) (*repository.CategoryStats, error) {
	const query = `
	SELECT
	    COUNT(*)                          AS total,
	    COUNT(*) FILTER (WHERE is_active) AS active,
	    COUNT(*) FILTER (
	        WHERE is_active
	          AND EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id AND p.is_active)
	    )                                 AS with_products,
	    COUNT(*) FILTER (
	        WHERE is_active
	          AND NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id AND p.is_active)
	    )                                 AS empty
	FROM categories c`
	var s repository.CategoryStats
	err := r.q.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.WithProducts, &s.Empty)
	if err != nil {
		return nil, r.wrap("GetStatistics", err)
	}
	return &s, nil
}

// UpdateDisplayOrders aplica un batch de cambios de orden en una transacción.
// IDs inexistentes se saltan sin error (semántica de aplicación parcial);
// devuelve cuántas filas se actualizaron para que el caller lo detecte.
func (r *CategoryRepo) UpdateDisplayOrders(ctx context.Context, orders map[int64]int) (int64, error) {
	if len(orders) == 0 {
		return 0, nil
	}
	b, ok := r.q.(beginner)
	if !ok {
		return r.updateDisplayOrders(ctx, r.q, orders)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return 0, r.wrap("UpdateDisplayOrders", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := r.updateDisplayOrders(ctx, tx, orders)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, r.wrap("UpdateDisplayOrders", err)
	}
	return n, nil
}

func (r *CategoryRepo) updateDisplayOrders(ctx context.Context, q Querier, orders map[int64]int) (int64, error) {
	var applied int64
	for id, order := range orders {
		cmd, err := q.Exec(ctx,
			`UPDATE categories SET display_order = $2, modified_date = now() AT TIME ZONE 'utc' WHERE id = $1`,
			id, order,
		)
		if err != nil {
			return 0, r.wrap("UpdateDisplayOrders", err)
		}
		if cmd.RowsAffected() == 0 {
			r.log.Warn().Int64("id", id).Msg("update display order: categoría inexistente, se salta")
			continue
		}
		applied += cmd.RowsAffected()
	}
	return applied, nil
}

// Delete borra una categoría y además elimina físicamente sus productos.
// Es la única ruta con borrado físico de hijos: los DELETE en bloque se
// emiten antes de que corra el pipeline, que solo reescribe a la categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	c, found, err := r.getAny(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	run := func(q Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM products WHERE category_id = $1`, id); err != nil {
			return r.wrap("Delete", err)
		}
		set := change.NewSet()
		set.Add(c, change.Deleted)
		r.pipe.Apply(time.Now().UTC(), set)
		sub := &CategoryRepo{Repo: newRepo(q, categorySpec, r.log)}
		if _, err := sub.updateStamped(ctx, c); err != nil {
			return err
		}
		set.Reset()
		return nil
	}

	b, ok := r.q.(beginner)
	if !ok {
		if err := run(r.q); err != nil {
			return err
		}
		r.log.Info().Int64("id", id).Msg("categoría borrada con sus productos")
		return nil
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return r.wrap("Delete", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := run(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return r.wrap("Delete", err)
	}
	r.log.Info().Int64("id", id).Msg("categoría borrada con sus productos")
	return nil
}
