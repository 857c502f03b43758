package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/filter"
)

func TestCompose_SinBaseNiBusqueda_All(t *testing.T) {
	assert.Equal(t, filter.All{}, filter.Compose(filter.All{}, "", filter.FieldName))
	assert.Equal(t, filter.All{}, filter.Compose(nil, "   ", filter.FieldName))
}

func TestCompose_SoloBase(t *testing.T) {
	base := filter.In{Field: filter.FieldDepotID, Values: []string{"d1"}}
	assert.Equal(t, base, filter.Compose(base, "", filter.FieldNodeCode))
}

func TestCompose_SoloBusqueda(t *testing.T) {
	got := filter.Compose(filter.All{}, " ref ", filter.FieldNodeCode, filter.FieldReeferID)
	assert.Equal(t, filter.Or{
		filter.Contains{Field: filter.FieldNodeCode, Term: "ref"},
		filter.Contains{Field: filter.FieldReeferID, Term: "ref"},
	}, got)
}

func TestCompose_BaseYBusqueda_And(t *testing.T) {
	base := filter.In{Field: filter.FieldDepotID, Values: []string{"d1"}}
	got := filter.Compose(base, "x", filter.FieldName)
	assert.Equal(t, filter.And{base, filter.Contains{Field: filter.FieldName, Term: "x"}}, got)
}

func TestMatches(t *testing.T) {
	rec := filter.RecordFunc(func(name string) string {
		switch name {
		case filter.FieldDepotID:
			return "d1"
		case filter.FieldReeferID:
			return "MSCU-ref123"
		}
		return ""
	})

	assert.True(t, filter.Matches(filter.All{}, rec))
	assert.False(t, filter.Matches(filter.None{}, rec))
	assert.True(t, filter.Matches(filter.In{Field: filter.FieldDepotID, Values: []string{"d0", "d1"}}, rec))
	assert.False(t, filter.Matches(filter.In{Field: filter.FieldDepotID}, rec))
	assert.True(t, filter.Matches(filter.Contains{Field: filter.FieldReeferID, Term: "REF123"}, rec))
	assert.False(t, filter.Matches(filter.Contains{Field: filter.FieldReeferID, Term: "REF124"}, rec))

	p := filter.Compose(filter.In{Field: filter.FieldDepotID, Values: []string{"d2"}}, "ref", filter.FieldReeferID)
	assert.False(t, filter.Matches(p, rec), "la búsqueda no amplía el alcance")
}

func TestCheckTerm(t *testing.T) {
	assert.NoError(t, filter.CheckTerm(""))
	assert.NoError(t, filter.CheckTerm("Valparaíso 50%"))
	assert.ErrorIs(t, filter.CheckTerm("REF\xff"), domain.ErrValidation)
	assert.ErrorIs(t, filter.CheckTerm("a\x00b"), domain.ErrValidation)
}

func TestMatches_MinusculasComoILIKE(t *testing.T) {
	rec := filter.RecordFunc(func(string) string { return "Depósito Árbol Straße" })

	assert.True(t, filter.Matches(filter.Contains{Field: filter.FieldName, Term: "ÁRBOL"}, rec))
	assert.True(t, filter.Matches(filter.Contains{Field: filter.FieldName, Term: "STRAßE"}, rec))
	assert.False(t, filter.Matches(filter.Contains{Field: filter.FieldName, Term: "strasse"}, rec), "sin plegado ß → ss")
}
