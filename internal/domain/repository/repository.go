package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Repository puerto genérico de persistencia para cualquier entidad Auditable.
// El alcance de borrado lógico es explícito: los métodos de lectura reciben
// includeInactive en vez de depender de un filtro global mágico. Las
// condiciones Find/Any/First se evalúan server-side (fragmento WHERE con
// placeholders posicionales $1..$n relativos al fragmento).
type Repository[T entity.Auditable] interface {
	// GetAll lista entidades; sin tracking, solo lectura.
	GetAll(ctx context.Context, includeInactive bool) ([]T, error)
	// GetByID devuelve nil (sin error) si la entidad no existe: en lecturas,
	// "no hay filas" es un resultado normal, nunca ErrNotFound.
	GetByID(ctx context.Context, id int64) (T, error)
	// Find filtra con una condición SQL arbitraria evaluada en el servidor.
	Find(ctx context.Context, cond string, args ...any) ([]T, error)
	// FirstOrDefault primera entidad que cumple la condición, o nil.
	FirstOrDefault(ctx context.Context, cond string, args ...any) (T, error)
	// Add inserta y persiste de inmediato; deja el ID generado en la entidad.
	Add(ctx context.Context, e T) error
	// Update marca la entidad como modificada por completo y persiste.
	Update(ctx context.Context, e T) error
	// Delete carga la entidad (ErrNotFound si no existe la fila física) y la
	// elimina, sujeto a la reescritura de borrado lógico del pipeline.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, includeInactive bool) (int64, error)
	CountWhere(ctx context.Context, cond string, args ...any) (int64, error)
	Any(ctx context.Context, cond string, args ...any) (bool, error)
}

// IsoLevel nivel de aislamiento transaccional (independiente del driver).
type IsoLevel string

const (
	IsoDefault        IsoLevel = ""                // read committed
	IsoReadCommitted  IsoLevel = "read committed"
	IsoRepeatableRead IsoLevel = "repeatable read"
	IsoSerializable   IsoLevel = "serializable"
)

// UnitOfWork agrega los repositorios sobre un mismo contexto de persistencia y
// coordina la ejecución transaccional. Una instancia pertenece a un solo flujo
// lógico; sus repositorios no deben usarse concurrentemente ni sobrevivirla.
type UnitOfWork interface {
	Products() ProductRepository
	Categories() CategoryRepository

	// Register agrega una entidad al change set pendiente; se persiste en el
	// próximo SaveChanges (resolución explícita, sin estado lazy oculto).
	Register(e entity.Auditable, st change.State)
	// SaveChanges aplica el pipeline de hooks al change set pendiente y lo
	// escribe; devuelve filas afectadas. La cancelación del ctx se propaga
	// sin envolver.
	SaveChanges(ctx context.Context) (int64, error)

	// BeginTransaction abre una transacción explícita. No se soporta
	// anidamiento: con una abierta devuelve ErrTxAlreadyOpen.
	BeginTransaction(ctx context.Context, iso IsoLevel) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	// ExecuteInTransaction abre una transacción, ejecuta fn, hace commit si fn
	// devuelve nil y rollback + re-lanzamiento si falla: ningún commit parcial
	// es observable por otros lectores.
	ExecuteInTransaction(ctx context.Context, iso IsoLevel, fn func(ctx context.Context) error) error

	// Close libera el contexto de persistencia exactamente una vez; llamadas
	// repetidas son inocuas.
	Close()
}

// InTransaction variante con valor de retorno de ExecuteInTransaction.
func InTransaction[R any](ctx context.Context, uow UnitOfWork, iso IsoLevel, fn func(ctx context.Context) (R, error)) (R, error) {
	var out R
	err := uow.ExecuteInTransaction(ctx, iso, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return out, nil
}
