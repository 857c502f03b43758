// Package scope deriva, a partir de los claims verificados, el predicado exacto
// que una petición puede ejecutar sobre Dispatch. Es el único lugar donde se
// construye ese predicado; todos los listados de despachos pasan por aquí.
package scope

import (
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// MaxResults tope de registros por listado de despachos (sin paginación).
const MaxResults = 100

// DispatchSearchFields campos sobre los que aplica la búsqueda libre.
var DispatchSearchFields = []string{filter.FieldNodeCode, filter.FieldReeferID}

// DispatchFilter devuelve el predicado autorizado para p combinado con search.
// ok es false cuando el alcance es vacío (no admin sin depósitos): el llamador
// debe devolver una lista vacía sin consultar el store.
func DispatchFilter(p entity.Principal, search string) (pred filter.Predicate, ok bool) {
	var base filter.Predicate = filter.All{}
	if !p.IsAdmin {
		if len(p.DepotIDs) == 0 {
			return filter.None{}, false
		}
		base = filter.In{
			Field:  filter.FieldDepotID,
			Values: append([]string(nil), p.DepotIDs...),
		}
	}
	return filter.Compose(base, search, DispatchSearchFields...), true
}
