package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// tableSpec describe el mapeo SQL de una entidad para la capa genérica.
// Es el contrato de capacidad resuelto en compile-time: cada entidad aporta su
// tabla, columnas y funciones de valores/scan; no hay reflexión en runtime.
type tableSpec[T entity.Auditable] struct {
	table      string
	insertCols []string // incluye created_date, modified_date, is_active
	updateCols []string // sin created_date: el UPDATE nunca la escribe
	insertVals func(e T) []any
	updateVals func(e T) []any
	// newRow entidad vacía más destinos de scan: id primero y luego insertCols
	// en el mismo orden.
	newRow func() (T, []any)
}

// Repo implementación genérica de repository.Repository[T] sobre PostgreSQL
// (usable con pool, conexión dedicada o tx). Las escrituras pasan siempre por
// el pipeline de hooks de pre-commit (auditoría y borrado lógico).
type Repo[T entity.Auditable] struct {
	q    Querier
	spec tableSpec[T]
	pipe *change.Pipeline
	log  *logger.Logger

	selectList string
	insertSQL  string
	updateSQL  string
}

// newRepo construye la capa genérica para una entidad. Pasar pool o tx (Querier).
func newRepo[T entity.Auditable](q Querier, spec tableSpec[T], log *logger.Logger) *Repo[T] {
	setParts := make([]string, len(spec.updateCols))
	for i, col := range spec.updateCols {
		setParts[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	placeholders := make([]string, len(spec.insertCols))
	for i := range spec.insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return &Repo[T]{
		q:          q,
		spec:       spec,
		pipe:       change.Default(),
		log:        log,
		selectList: "id, " + strings.Join(spec.insertCols, ", "),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			spec.table, strings.Join(spec.insertCols, ", "), strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1",
			spec.table, strings.Join(setParts, ", ")),
	}
}

// wrap clasifica fallas de la capa de persistencia: unique constraint ->
// ErrDuplicate; cancelación y errores de dominio pasan intactos; el resto se
// envuelve como StoreError conservando la causa.
func (r *Repo[T]) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return domain.NewStoreError(r.spec.table+"."+op, err)
}

// queryMany ejecuta un SELECT de varias filas con el selectList de la entidad.
func (r *Repo[T]) queryMany(ctx context.Context, op, query string, args ...any) ([]T, error) {
	r.log.Debug().Str("table", r.spec.table).Str("op", op).Msg("consulta")
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Str("table", r.spec.table).Str("op", op).Msg("consulta falló")
		return nil, r.wrap(op, err)
	}
	defer rows.Close()
	var list []T
	for rows.Next() {
		e, dest := r.spec.newRow()
		if err := rows.Scan(dest...); err != nil {
			return nil, r.wrap(op, err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrap(op, err)
	}
	return list, nil
}

// queryOne ejecuta un SELECT de una fila; found=false si no hay resultado
// ("no hay filas" es un resultado normal de lectura, no un error).
func (r *Repo[T]) queryOne(ctx context.Context, op, query string, args ...any) (T, bool, error) {
	r.log.Debug().Str("table", r.spec.table).Str("op", op).Msg("consulta")
	e, dest := r.spec.newRow()
	err := r.q.QueryRow(ctx, query, args...).Scan(dest...)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}
		r.log.Error().Err(err).Str("table", r.spec.table).Str("op", op).Msg("consulta falló")
		return zero, false, r.wrap(op, err)
	}
	return e, true, nil
}

// GetAll lista entidades sin tracking. includeInactive=false excluye las
// borradas lógicamente.
func (r *Repo[T]) GetAll(ctx context.Context, includeInactive bool) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", r.selectList, r.spec.table)
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	return r.queryMany(ctx, "GetAll", query+" ORDER BY id")
}

// GetByID busca por clave primaria dentro del alcance activo; nil si no existe.
func (r *Repo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND is_active = TRUE", r.selectList, r.spec.table)
	e, _, err := r.queryOne(ctx, "GetByID", query, id)
	return e, err
}

// getAny busca por clave primaria sin filtro de activos (lo usa Delete: la
// fila física puede estar ya inactiva y el borrado debe seguir siendo idempotente).
func (r *Repo[T]) getAny(ctx context.Context, id int64) (T, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectList, r.spec.table)
	return r.queryOne(ctx, "getAny", query, id)
}

// Find filtra con una condición SQL evaluada en el servidor, acotada a filas activas.
func (r *Repo[T]) Find(ctx context.Context, cond string, args ...any) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE (%s) AND is_active = TRUE ORDER BY id",
		r.selectList, r.spec.table, cond)
	return r.queryMany(ctx, "Find", query, args...)
}

// FirstOrDefault primera entidad activa que cumple la condición, o nil.
func (r *Repo[T]) FirstOrDefault(ctx context.Context, cond string, args ...any) (T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE (%s) AND is_active = TRUE ORDER BY id LIMIT 1",
		r.selectList, r.spec.table, cond)
	e, _, err := r.queryOne(ctx, "FirstOrDefault", query, args...)
	return e, err
}

// Add inserta y persiste de inmediato; deja el ID generado en la entidad.
func (r *Repo[T]) Add(ctx context.Context, e T) error {
	set := change.NewSet()
	set.Add(e, change.Added)
	r.pipe.Apply(time.Now().UTC(), set)
	if _, err := r.insertStamped(ctx, e); err != nil {
		return err
	}
	set.Reset()
	r.log.Info().Str("table", r.spec.table).Int64("id", e.Audit().ID).Msg("entidad creada")
	return nil
}

// Update marca la entidad como modificada por completo y persiste.
// ErrNotFound si la fila física no existe.
func (r *Repo[T]) Update(ctx context.Context, e T) error {
	set := change.NewSet()
	set.Add(e, change.Modified)
	r.pipe.Apply(time.Now().UTC(), set)
	n, err := r.updateStamped(ctx, e)
	if err != nil {
		return err
	}
	if n == 0 {
		r.log.Warn().Str("table", r.spec.table).Int64("id", e.Audit().ID).Msg("update sin filas afectadas")
		return domain.ErrNotFound
	}
	set.Reset()
	r.log.Info().Str("table", r.spec.table).Int64("id", e.Audit().ID).Msg("entidad actualizada")
	return nil
}

// Delete carga la entidad y la elimina. El pipeline reescribe el borrado a
// UPDATE (IsActive=false): por esta ruta nunca se elimina la fila física.
// ErrNotFound solo si la fila física no existe.
func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	e, found, err := r.getAny(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		r.log.Warn().Str("table", r.spec.table).Int64("id", id).Msg("delete: entidad no encontrada")
		return domain.ErrNotFound
	}
	set := change.NewSet()
	set.Add(e, change.Deleted)
	r.pipe.Apply(time.Now().UTC(), set)
	if _, err := r.updateStamped(ctx, e); err != nil {
		return err
	}
	set.Reset()
	r.log.Info().Str("table", r.spec.table).Int64("id", id).Msg("entidad borrada (lógico)")
	return nil
}

// Exists indica si hay una fila activa con ese ID.
func (r *Repo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND is_active = TRUE)", r.spec.table)
	var ok bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, r.wrap("Exists", err)
	}
	return ok, nil
}

// Count total de filas; includeInactive=false cuenta solo activas.
func (r *Repo[T]) Count(ctx context.Context, includeInactive bool) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.spec.table)
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, r.wrap("Count", err)
	}
	return n, nil
}

// CountWhere cuenta filas activas que cumplen la condición.
func (r *Repo[T]) CountWhere(ctx context.Context, cond string, args ...any) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE (%s) AND is_active = TRUE", r.spec.table, cond)
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, r.wrap("CountWhere", err)
	}
	return n, nil
}

// Any indica si alguna fila activa cumple la condición.
func (r *Repo[T]) Any(ctx context.Context, cond string, args ...any) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE (%s) AND is_active = TRUE)", r.spec.table, cond)
	var ok bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, r.wrap("Any", err)
	}
	return ok, nil
}

// insertStamped escribe un INSERT de una entidad ya sellada por el pipeline.
// Lo usa también el unit of work al hacer flush de su change set.
func (r *Repo[T]) insertStamped(ctx context.Context, e T) (int64, error) {
	err := r.q.QueryRow(ctx, r.insertSQL, r.spec.insertVals(e)...).Scan(&e.Audit().ID)
	if err != nil {
		r.log.Error().Err(err).Str("table", r.spec.table).Msg("insert falló")
		return 0, r.wrap("insert", err)
	}
	return 1, nil
}

// updateStamped escribe un UPDATE de una entidad ya sellada. Nunca toca
// created_date (updateCols la excluye); devuelve filas afectadas.
func (r *Repo[T]) updateStamped(ctx context.Context, e T) (int64, error) {
	args := append([]any{e.Audit().ID}, r.spec.updateVals(e)...)
	cmd, err := r.q.Exec(ctx, r.updateSQL, args...)
	if err != nil {
		r.log.Error().Err(err).Str("table", r.spec.table).Int64("id", e.Audit().ID).Msg("update falló")
		return 0, r.wrap("update", err)
	}
	return cmd.RowsAffected(), nil
}
