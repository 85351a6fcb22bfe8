package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

func TestStoreError_ConservaLaCausa(t *testing.T) {
	causa := errors.New("connection refused")
	err := domain.NewStoreError("products.GetAll", causa)

	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "products.GetAll", se.Op)
	assert.ErrorIs(t, err, causa)
}

// La cancelación nunca se envuelve: el caller debe poder hacer
// errors.Is(err, context.Canceled) directo.
func TestNewStoreError_CancelacionPasaIntacta(t *testing.T) {
	assert.ErrorIs(t, domain.NewStoreError("op", context.Canceled), context.Canceled)
	assert.ErrorIs(t, domain.NewStoreError("op", context.DeadlineExceeded), context.DeadlineExceeded)

	var se *domain.StoreError
	assert.False(t, errors.As(domain.NewStoreError("op", context.Canceled), &se))
}

// Errores de dominio ya clasificados pasan sin re-envolver.
func TestNewStoreError_DominioPasaIntacto(t *testing.T) {
	for _, err := range []error{domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrDuplicate} {
		out := domain.NewStoreError("op", err)
		assert.ErrorIs(t, out, err)
		var se *domain.StoreError
		assert.False(t, errors.As(out, &se))
	}
	// también si vienen envueltos con contexto adicional
	wrapped := fmt.Errorf("%w: producto 9", domain.ErrNotFound)
	assert.ErrorIs(t, domain.NewStoreError("op", wrapped), domain.ErrNotFound)
}

func TestNewStoreError_NoReenvuelve(t *testing.T) {
	inner := domain.NewStoreError("a", errors.New("x"))
	outer := domain.NewStoreError("b", inner)
	assert.Same(t, inner, outer)
}

func TestNewStoreError_NilEsNil(t *testing.T) {
	assert.NoError(t, domain.NewStoreError("op", nil))
}
