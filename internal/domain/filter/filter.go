// Package filter es el constructor de consultas: un AST de predicados pequeño,
// sin estado, que los repositorios traducen a su motor (SQL o evaluación en memoria).
package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reefet/reefet-api/internal/domain"
)

// Campos filtrables. Los adaptadores de persistencia solo aceptan estos nombres.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldDepotID   = "depot_id"
	FieldNodeCode  = "node_code"
	FieldReeferID  = "reefer_id"
	FieldCompanyID = "company_id"
)

// Predicate es un nodo del árbol de condiciones.
type Predicate interface {
	predicate()
}

// All coincide con todos los registros.
type All struct{}

// None no coincide con ningún registro.
type None struct{}

// In restringe Field a uno de Values. Con Values vacío no coincide con nada.
type In struct {
	Field  string
	Values []string
}

// Contains es una coincidencia de subcadena sin distinguir mayúsculas.
type Contains struct {
	Field string
	Term  string
}

// And exige todas las condiciones.
type And []Predicate

// Or exige al menos una condición.
type Or []Predicate

func (All) predicate()      {}
func (None) predicate()     {}
func (In) predicate()       {}
func (Contains) predicate() {}
func (And) predicate()      {}
func (Or) predicate()       {}

// IsAll indica si p es trivial (coincide con todo).
func IsAll(p Predicate) bool {
	if p == nil {
		return true
	}
	_, ok := p.(All)
	return ok
}

// CheckTerm rechaza términos de búsqueda que ningún store puede comparar:
// UTF-8 inválido o bytes NUL.
func CheckTerm(term string) error {
	if !utf8.ValidString(term) || strings.ContainsRune(term, 0) {
		return fmt.Errorf("%w: search contiene caracteres inválidos", domain.ErrValidation)
	}
	return nil
}

// Search construye el grupo OR de coincidencias de subcadena sobre fields.
// Un término vacío o en blanco devuelve All.
func Search(term string, fields ...string) Predicate {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return All{}
	}
	if len(fields) == 1 {
		return Contains{Field: fields[0], Term: term}
	}
	or := make(Or, 0, len(fields))
	for _, f := range fields {
		or = append(or, Contains{Field: f, Term: term})
	}
	return or
}

// Compose combina el predicado base (de seguridad) con la búsqueda libre.
// Si ambos son no triviales se unen con AND; si solo uno lo es se usa tal cual;
// si ninguno, el resultado es All.
func Compose(base Predicate, search string, fields ...string) Predicate {
	if base == nil {
		base = All{}
	}
	s := Search(search, fields...)
	switch {
	case IsAll(base) && IsAll(s):
		return All{}
	case IsAll(s):
		return base
	case IsAll(base):
		return s
	default:
		return And{base, s}
	}
}
