package entity

// Category representa una categoría del catálogo de productos.
// Borrar una categoría NO arrastra sus productos: la FK queda en NULL (ON DELETE SET NULL).
type Category struct {
	BaseEntity
	Name         string // único, obligatorio, máx. 100
	Description  string // máx. 500
	Icon         string // máx. 200
	DisplayOrder int    // >= 0, default 0

	// Products productos de la categoría; se carga solo en consultas explícitas
	// (GetWithProducts, GetWithProductCounts), nunca de forma implícita.
	Products []*Product
}

// Límites de longitud de Category (coinciden con las columnas VARCHAR).
const (
	CategoryNameMaxLen        = 100
	CategoryDescriptionMaxLen = 500
	CategoryIconMaxLen        = 200
)

// TableName implementa entity.Auditable.
func (c *Category) TableName() string { return "categories" }

// HasProducts indica si la categoría tiene al menos un producto cargado.
func (c *Category) HasProducts() bool { return len(c.Products) > 0 }
