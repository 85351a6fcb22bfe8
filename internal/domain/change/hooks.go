package change

import "time"

// AuditStamp sella timestamps de auditoría antes del commit:
//   - Added: CreatedDate = ModifiedDate = now.
//   - Modified: ModifiedDate = now; CreatedDate no se toca aunque el caller
//     haya puesto otro valor (el UPDATE físico nunca escribe created_date,
//     así el sellado original queda fijado también a nivel de SQL).
//
// Corre idéntico en la ruta síncrona y asíncrona: hay un solo pipeline.
func AuditStamp(now time.Time, set *Set) {
	for _, c := range set.Changes {
		base := c.Entity.Audit()
		switch c.State {
		case Added:
			base.CreatedDate = now
			base.ModifiedDate = now
		case Modified:
			base.ModifiedDate = now
		}
	}
}

// SoftDelete reescribe los borrados pendientes antes del commit:
//   - Deleted -> Modified, IsActive = false, ModifiedDate = now.
//   - Added: asegura IsActive = true (una fila nueva nace activa).
//
// Efecto neto: por la ruta repositorio/unit-of-work un Delete nunca elimina
// la fila física; siempre degrada a un UPDATE. El borrado físico de hijos
// (cascade helper de categorías) emite sus DELETE antes de este pipeline.
func SoftDelete(now time.Time, set *Set) {
	for _, c := range set.Changes {
		base := c.Entity.Audit()
		switch c.State {
		case Added:
			base.IsActive = true
		case Deleted:
			c.State = Modified
			base.IsActive = false
			base.ModifiedDate = now
		}
	}
}
