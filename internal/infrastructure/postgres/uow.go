package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork agrega los repositorios sobre una conexión dedicada del pool y
// coordina la ejecución transaccional. Una instancia pertenece a un solo flujo
// lógico (ej. un request); no debe usarse concurrentemente. Los repositorios
// se resuelven en la construcción, sin estado lazy.
type UnitOfWork struct {
	conn *pgxpool.Conn
	log  *logger.Logger
	pipe *change.Pipeline
	tx   pgx.Tx // transacción explícita abierta, o nil

	products   *ProductRepo
	categories *CategoryRepo

	pending   *change.Set
	closeOnce sync.Once
}

// uowQuerier enruta cada statement a la transacción abierta si la hay, o a la
// conexión dedicada. Así los repositorios del unit of work participan de la
// transacción sin reconstruirse.
type uowQuerier struct{ u *UnitOfWork }

func (q uowQuerier) active() Querier {
	if q.u.tx != nil {
		return q.u.tx
	}
	return q.u.conn
}

func (q uowQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.active().Exec(ctx, sql, args...)
}

func (q uowQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.active().Query(ctx, sql, args...)
}

func (q uowQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.active().QueryRow(ctx, sql, args...)
}

func (q uowQuerier) Begin(ctx context.Context) (pgx.Tx, error) {
	if q.u.tx != nil {
		return q.u.tx.Begin(ctx) // savepoint dentro de la transacción abierta
	}
	return q.u.conn.Begin(ctx)
}

// NewUnitOfWork adquiere una conexión dedicada del pool y construye los
// repositorios sobre ella. Liberar siempre con Close.
func NewUnitOfWork(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) (*UnitOfWork, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, domain.NewStoreError("uow.Acquire", err)
	}
	u := &UnitOfWork{
		conn:    conn,
		log:     log,
		pipe:    change.Default(),
		pending: change.NewSet(),
	}
	q := uowQuerier{u: u}
	u.products = NewProductRepository(q, log)
	u.categories = NewCategoryRepository(q, log)
	return u, nil
}

// Products repositorio de productos atado a este unit of work.
func (u *UnitOfWork) Products() repository.ProductRepository { return u.products }

// Categories repositorio de categorías atado a este unit of work.
func (u *UnitOfWork) Categories() repository.CategoryRepository { return u.categories }

// Register agrega una entidad al change set pendiente; se persiste en el
// próximo SaveChanges.
func (u *UnitOfWork) Register(e entity.Auditable, st change.State) {
	u.pending.Add(e, st)
}

// SaveChanges aplica el pipeline (sellado de auditoría y luego reescritura de
// borrado lógico, siempre en ese orden) al change set pendiente y lo escribe.
// El lote es atómico: sin transacción explícita abierta, abre la suya y la
// confirma al final; ante cualquier falla o cancelación ninguna escritura
// queda visible y el change set se conserva para reintentar. Devuelve filas
// afectadas. La cancelación del ctx se propaga sin envolver; cualquier otra
// falla de la capa de persistencia llega envuelta.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if u.pending.Len() == 0 {
		return 0, nil
	}
	batchID := uuid.New().String()
	u.log.Debug().Str("batch", batchID).Int("pendientes", u.pending.Len()).Msg("guardando cambios")

	propia := u.tx == nil
	if propia {
		tx, err := u.conn.Begin(ctx)
		if err != nil {
			return 0, domain.NewStoreError("uow.SaveChanges", err)
		}
		u.tx = tx
		defer func() {
			// Si sigue abierta al salir es que hubo una falla: revertir.
			if u.tx != nil {
				_ = u.tx.Rollback(context.WithoutCancel(ctx))
				u.tx = nil
			}
		}()
	}

	u.pipe.Apply(time.Now().UTC(), u.pending)

	var total int64
	for _, c := range u.pending.Changes {
		if c.State == change.Unchanged {
			continue
		}
		n, err := u.flush(ctx, c)
		if err != nil {
			u.log.Error().Err(err).Str("batch", batchID).Msg("guardado falló")
			return 0, err
		}
		total += n
	}
	if propia {
		tx := u.tx
		u.tx = nil
		if err := tx.Commit(ctx); err != nil {
			return 0, domain.NewStoreError("uow.SaveChanges", err)
		}
	}
	u.pending.Reset()
	u.log.Info().Str("batch", batchID).Int64("filas", total).Msg("cambios guardados")
	return total, nil
}

// flush escribe un cambio ya sellado por el pipeline. Tras los hooks solo
// quedan estados Added y Modified (Deleted se reescribe a Modified).
func (u *UnitOfWork) flush(ctx context.Context, c *change.Change) (int64, error) {
	switch e := c.Entity.(type) {
	case *entity.Product:
		if c.State == change.Added {
			return u.products.insertStamped(ctx, e)
		}
		return u.products.updateStamped(ctx, e)
	case *entity.Category:
		if c.State == change.Added {
			return u.categories.insertStamped(ctx, e)
		}
		return u.categories.updateStamped(ctx, e)
	default:
		return 0, domain.NewStoreError("uow.SaveChanges", fmt.Errorf("tipo de entidad no soportado: %T", c.Entity))
	}
}

func mapIso(iso repository.IsoLevel) pgx.TxIsoLevel {
	switch iso {
	case repository.IsoRepeatableRead:
		return pgx.RepeatableRead
	case repository.IsoSerializable:
		return pgx.Serializable
	default: // read committed es el aislamiento por defecto
		return pgx.ReadCommitted
	}
}

// BeginTransaction abre una transacción explícita sobre la conexión dedicada.
// No se soporta anidamiento: con una abierta devuelve ErrTxAlreadyOpen.
func (u *UnitOfWork) BeginTransaction(ctx context.Context, iso repository.IsoLevel) error {
	if u.tx != nil {
		return domain.ErrTxAlreadyOpen
	}
	tx, err := u.conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: mapIso(iso)})
	if err != nil {
		return domain.NewStoreError("uow.BeginTransaction", err)
	}
	u.tx = tx
	return nil
}

// CommitTransaction confirma la transacción abierta.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		return domain.ErrNoTx
	}
	err := u.tx.Commit(ctx)
	u.tx = nil
	if err != nil {
		return domain.NewStoreError("uow.CommitTransaction", err)
	}
	return nil
}

// RollbackTransaction revierte la transacción abierta.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	if u.tx == nil {
		return domain.ErrNoTx
	}
	err := u.tx.Rollback(ctx)
	u.tx = nil
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return domain.NewStoreError("uow.RollbackTransaction", err)
	}
	return nil
}

// ExecuteInTransaction abre una transacción, ejecuta fn y hace Commit si fn
// devuelve nil; si falla hace Rollback y re-lanza el error del caller tal
// cual: ningún commit parcial queda observable por otros lectores.
func (u *UnitOfWork) ExecuteInTransaction(ctx context.Context, iso repository.IsoLevel, fn func(ctx context.Context) error) error {
	if err := u.BeginTransaction(ctx, iso); err != nil {
		return err
	}
	txID := uuid.New().String()
	u.log.Debug().Str("tx", txID).Msg("transacción iniciada")

	if err := fn(ctx); err != nil {
		if rbErr := u.RollbackTransaction(context.WithoutCancel(ctx)); rbErr != nil {
			u.log.Error().Err(rbErr).Str("tx", txID).Msg("rollback falló")
		}
		u.log.Warn().Err(err).Str("tx", txID).Msg("transacción revertida")
		return err
	}
	if err := u.CommitTransaction(ctx); err != nil {
		return err
	}
	u.log.Debug().Str("tx", txID).Msg("transacción confirmada")
	return nil
}

// Close libera la conexión dedicada exactamente una vez; llamadas repetidas
// son inocuas. Si quedó una transacción abierta se revierte.
func (u *UnitOfWork) Close() {
	u.closeOnce.Do(func() {
		if u.tx != nil {
			_ = u.tx.Rollback(context.Background())
			u.tx = nil
		}
		u.conn.Release()
	})
}
