package change_test

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain/change"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func nuevoProducto() *entity.Product {
	return &entity.Product{Name: "Teclado", SKU: "SKU-1"}
}

// Una entidad nueva sale del pipeline con CreatedDate == ModifiedDate y activa.
func TestPipeline_NuevoCreatedIgualModified(t *testing.T) {
	p := nuevoProducto()
	now := time.Now().UTC()

	set := change.NewSet()
	set.Add(p, change.Added)
	change.Default().Apply(now, set)

	assert.Equal(t, now, p.CreatedDate)
	assert.Equal(t, now, p.ModifiedDate)
	assert.True(t, p.IsActive)
}

// En una modificación el pipeline sella ModifiedDate y no toca CreatedDate,
// aunque el caller haya puesto otro valor.
func TestPipeline_ModificadoNoTocaCreated(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := nuevoProducto()
	p.CreatedDate = created
	p.IsActive = true

	now := created.Add(48 * time.Hour)
	set := change.NewSet()
	set.Add(p, change.Modified)
	change.Default().Apply(now, set)

	assert.Equal(t, created, p.CreatedDate)
	assert.Equal(t, now, p.ModifiedDate)
	assert.True(t, p.ModifiedDate.After(p.CreatedDate))
}

// Un borrado pendiente se reescribe a modificación: IsActive=false,
// ModifiedDate sellado, y el estado queda Modified (nunca llega un DELETE físico).
func TestPipeline_ReescribeDeleteAUpdate(t *testing.T) {
	p := nuevoProducto()
	p.IsActive = true
	now := time.Now().UTC()

	set := change.NewSet()
	c := set.Add(p, change.Deleted)
	change.Default().Apply(now, set)

	assert.Equal(t, change.Modified, c.State)
	assert.False(t, p.IsActive)
	assert.Equal(t, now, p.ModifiedDate)
}

// El orden es fijo: auditoría primero, borrado lógico después. Con el orden
// invertido un Deleted reescrito a Modified recibiría un segundo sellado; acá
// el timestamp del borrado debe ser exactamente el del ciclo.
func TestPipeline_OrdenAuditoriaAntesDeSoftDelete(t *testing.T) {
	agregado := nuevoProducto()
	borrado := nuevoProducto()
	borrado.CreatedDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	borrado.IsActive = true

	now := time.Now().UTC()
	set := change.NewSet()
	set.Add(agregado, change.Added)
	cBorrado := set.Add(borrado, change.Deleted)
	change.Default().Apply(now, set)

	// mismo batch, mismo timestamp para ambos hooks
	require.Equal(t, now, agregado.CreatedDate)
	require.Equal(t, now, agregado.ModifiedDate)
	require.Equal(t, change.Modified, cBorrado.State)
	require.Equal(t, now, borrado.ModifiedDate)
	// el sellado de auditoría no tocó la fecha de creación del borrado
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), borrado.CreatedDate)
}

// Tras Reset el set queda vacío (estado terminal Unchanged tras el guardado).
func TestSet_ResetDejaSinPendientes(t *testing.T) {
	set := change.NewSet()
	set.Add(nuevoProducto(), change.Added)
	set.Add(nuevoProducto(), change.Modified)
	require.Equal(t, 2, set.Len())

	set.Reset()
	assert.Equal(t, 0, set.Len())
}

// Propiedad: para cualquier mezcla de estados, después del pipeline no queda
// ningún Deleted, toda entidad Added queda activa con CreatedDate==ModifiedDate,
// y ModifiedDate >= CreatedDate en todos los cambios sellados.
func TestProperty_PipelineNuncaDejaDeletes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("sin Deleted y auditoría consistente", prop.ForAll(
		func(states []int) bool {
			now := time.Now().UTC()
			set := change.NewSet()
			var changes []*change.Change
			for _, s := range states {
				p := nuevoProducto()
				if change.State(s) != change.Added {
					// entidad "ya persistida": fecha de creación histórica
					p.CreatedDate = now.Add(-24 * time.Hour)
					p.IsActive = true
				}
				changes = append(changes, set.Add(p, change.State(s)))
			}
			change.Default().Apply(now, set)

			for _, c := range changes {
				base := c.Entity.Audit()
				if c.State == change.Deleted {
					return false
				}
				if base.ModifiedDate.Before(base.CreatedDate) && c.State != change.Unchanged {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(int(change.Unchanged), int(change.Deleted))),
	))

	properties.TestingRun(t)
}
