package entity

import "time"

// BaseEntity campos comunes de identidad, auditoría y borrado lógico.
// Todas las entidades del catálogo la embeben.
type BaseEntity struct {
	ID           int64
	CreatedDate  time.Time // se fija una sola vez en el insert; inmutable después
	ModifiedDate time.Time // se actualiza en cada mutación; siempre >= CreatedDate
	IsActive     bool      // false = borrado lógico
}

// Auditable contrato de capacidad que toda entidad persistible cumple.
// Se resuelve en compile-time vía generics; la capa genérica no usa reflexión.
type Auditable interface {
	Audit() *BaseEntity
	// TableName nombre de la tabla en PostgreSQL (para SQL y logs de la capa genérica).
	TableName() string
}

// Audit expone los campos comunes (las entidades lo heredan al embeber BaseEntity).
func (b *BaseEntity) Audit() *BaseEntity { return b }
