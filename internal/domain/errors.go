package domain

import (
	"context"
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrTxAlreadyOpen = errors.New("ya hay una transacción abierta")
	ErrNoTx          = errors.New("no hay transacción abierta")
)

// StoreError falla inesperada de la capa de persistencia (constraint, conexión,
// timeout). Conserva siempre la causa original para diagnóstico; los
// repositorios nunca exponen tipos de error de pgx a sus callers.
type StoreError struct {
	Op  string // operación que falló, ej. "products.GetPaginated"
	Err error  // causa original
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap permite errors.Is/As sobre la causa.
func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError envuelve err como StoreError salvo los casos que deben pasar
// intactos: nil, cancelación de contexto y errores de dominio ya clasificados
// (NotFound, InvalidInput, Duplicate). Idempotente sobre un StoreError previo.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDuplicate) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
