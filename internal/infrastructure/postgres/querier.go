package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstracción mínima de ejecución SQL: la satisfacen *pgxpool.Pool,
// *pgxpool.Conn y pgx.Tx, así los repositorios funcionan igual con pool,
// conexión dedicada o transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner lo implementan pool, conn y tx (savepoint); permite a un repo
// abrir una transacción local sin saber sobre qué corre.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation detecta el código 23505 de PostgreSQL; los repositorios lo
// traducen a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
