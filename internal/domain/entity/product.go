package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo.
type Product struct {
	BaseEntity
	Name        string          // obligatorio, máx. 200
	Description string          // máx. 1000
	Price       decimal.Decimal // > 0, dos decimales
	Stock       int             // >= 0
	SKU         string          // obligatorio, único, máx. 50
	ImageURL    string          // opcional, máx. 500
	CategoryID  *int64          // nullable: queda en NULL si se borra la categoría

	// Category se carga solo en consultas explícitas con join.
	Category *Category
}

// Límites de longitud de Product (coinciden con las columnas VARCHAR).
const (
	ProductNameMaxLen        = 200
	ProductDescriptionMaxLen = 1000
	ProductSKUMaxLen         = 50
	ProductImageURLMaxLen    = 500
)

// DefaultLowStockThreshold umbral por defecto para reportes de stock bajo.
const DefaultLowStockThreshold = 10

// TableName implementa entity.Auditable.
func (p *Product) TableName() string { return "products" }

// InStock derivado de solo lectura: hay existencias.
func (p *Product) InStock() bool { return p.Stock > 0 }
