package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reefet/reefet-api/internal/application/scope"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

func TestDispatchFilter_AdminSinBusqueda(t *testing.T) {
	pred, ok := scope.DispatchFilter(entity.Principal{IsAdmin: true, DepotIDs: []string{"d1"}}, "")
	assert.True(t, ok)
	assert.Equal(t, filter.All{}, pred, "admin ignora depotIds")
}

func TestDispatchFilter_AdminConBusqueda(t *testing.T) {
	pred, ok := scope.DispatchFilter(entity.Principal{IsAdmin: true}, "REF123")
	assert.True(t, ok)
	assert.Equal(t, filter.Or{
		filter.Contains{Field: filter.FieldNodeCode, Term: "REF123"},
		filter.Contains{Field: filter.FieldReeferID, Term: "REF123"},
	}, pred)
}

func TestDispatchFilter_NoAdminSinDepositos(t *testing.T) {
	_, ok := scope.DispatchFilter(entity.Principal{}, "algo")
	assert.False(t, ok)
}

func TestDispatchFilter_NoAdminRestringeADepositos(t *testing.T) {
	pred, ok := scope.DispatchFilter(entity.Principal{DepotIDs: []string{"d1", "d2"}}, "  ")
	assert.True(t, ok)
	assert.Equal(t, filter.In{Field: filter.FieldDepotID, Values: []string{"d1", "d2"}}, pred)
}

func TestDispatchFilter_NoAdminConBusqueda(t *testing.T) {
	pred, ok := scope.DispatchFilter(entity.Principal{DepotIDs: []string{"d1"}}, "ref")
	assert.True(t, ok)
	and, isAnd := pred.(filter.And)
	assert.True(t, isAnd)
	assert.Len(t, and, 2)
	assert.Equal(t, filter.In{Field: filter.FieldDepotID, Values: []string{"d1"}}, and[0])
}

func TestDispatchFilter_NoComparteSliceDelPrincipal(t *testing.T) {
	p := entity.Principal{DepotIDs: []string{"d1"}}
	pred, _ := scope.DispatchFilter(p, "")
	p.DepotIDs[0] = "d9"
	assert.Equal(t, []string{"d1"}, pred.(filter.In).Values)
}
