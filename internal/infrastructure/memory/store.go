// Package memory implementa los puertos de persistencia en proceso, con la misma
// semántica de índices únicos y claves foráneas que el esquema PostgreSQL.
// Se usa en desarrollo (DB_DRIVER=memory) y en tests.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

// Store guarda todas las entidades. Cada escritura es atómica bajo mu.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]entity.Company
	depots     map[string]entity.Depot
	nodes      map[string]entity.Node
	dispatches map[string]entity.Dispatch
	users      map[string]entity.User

	// índices únicos: clave → id
	unique map[string]map[string]string
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		companies:  make(map[string]entity.Company),
		depots:     make(map[string]entity.Depot),
		nodes:      make(map[string]entity.Node),
		dispatches: make(map[string]entity.Dispatch),
		users:      make(map[string]entity.User),
		unique:     make(map[string]map[string]string),
	}
}

// Índices únicos con el mismo nombre que en el esquema SQL.
const (
	idxUserEmail      = "users_email_key"
	idxCompanyName    = "companies_name_key"
	idxCompanyTaxID   = "companies_tax_id_key"
	idxDepotName      = "depots_name_key"
	idxDepotNodeTag   = "depots_node_identifier_key"
	idxNodeExternalID = "nodes_external_code_key"
)

// reserve comprueba todas las claves antes de insertar ninguna. Debe llamarse con mu tomado.
func (s *Store) reserve(id string, keys map[string]string) error {
	for idx, key := range keys {
		if _, taken := s.unique[idx][key]; taken {
			return fmt.Errorf("%w: %s", domain.ErrConflict, idx)
		}
	}
	for idx, key := range keys {
		if s.unique[idx] == nil {
			s.unique[idx] = make(map[string]string)
		}
		s.unique[idx][key] = id
	}
	return nil
}

// DispatchCount devuelve el número de despachos almacenados.
func (s *Store) DispatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dispatches)
}

// DepotCount devuelve el número de depósitos almacenados.
func (s *Store) DepotCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.depots)
}

func refsMatching[T any](items map[string]T, pred filter.Predicate, limit int, ref func(T) (entity.Ref, filter.Record)) []entity.Ref {
	out := make([]entity.Ref, 0)
	for _, it := range items {
		r, rec := ref(it)
		if filter.Matches(pred, rec) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
