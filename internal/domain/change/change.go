// Package change modela el conjunto de cambios pendientes de un guardado y los
// hooks de pre-commit que lo transforman (sellado de auditoría y reescritura de
// borrado lógico). Los hooks son funciones puras sobre el change set; el orden
// de aplicación es fijo y no depende del orden de registro.
package change

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// State estado de una entidad dentro de un ciclo de guardado.
type State int

const (
	Unchanged State = iota
	Added
	Modified
	Deleted
)

// String para logs.
func (s State) String() string {
	switch s {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Change una entidad pendiente con su estado dentro del ciclo de guardado.
type Change struct {
	Entity entity.Auditable
	State  State
}

// Set conjunto de cambios pendientes de un guardado.
type Set struct {
	Changes []*Change
}

// NewSet construye un change set a partir de cambios sueltos.
func NewSet(changes ...*Change) *Set {
	return &Set{Changes: changes}
}

// Add agrega una entidad con su estado al set.
func (s *Set) Add(e entity.Auditable, st State) *Change {
	c := &Change{Entity: e, State: st}
	s.Changes = append(s.Changes, c)
	return c
}

// Len cantidad de cambios pendientes (estado != Unchanged).
func (s *Set) Len() int {
	n := 0
	for _, c := range s.Changes {
		if c.State != Unchanged {
			n++
		}
	}
	return n
}

// Reset marca todos los cambios como Unchanged (estado terminal tras el guardado).
func (s *Set) Reset() {
	for _, c := range s.Changes {
		c.State = Unchanged
	}
	s.Changes = s.Changes[:0]
}

// Hook transformación de pre-commit sobre el change set. now es el instante
// UTC del guardado: todos los cambios de un mismo ciclo comparten timestamp.
type Hook func(now time.Time, set *Set)

// Pipeline lista ordenada de hooks aplicada antes de la escritura física.
type Pipeline struct {
	hooks []Hook
}

// NewPipeline construye el pipeline con los hooks en el orden dado.
func NewPipeline(hooks ...Hook) *Pipeline {
	return &Pipeline{hooks: hooks}
}

// Default pipeline estándar: sellado de auditoría y luego reescritura de
// borrado lógico. El orden es contrato de corrección, no convención: la
// reescritura debe ver el mismo batch que el sellado ya tocó.
func Default() *Pipeline {
	return NewPipeline(AuditStamp, SoftDelete)
}

// Apply ejecuta los hooks en orden sobre el set.
func (p *Pipeline) Apply(now time.Time, set *Set) {
	for _, h := range p.hooks {
		h(now, set)
	}
}
