package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record expone los valores de campo de un registro para la evaluación en memoria.
type Record interface {
	Field(name string) string
}

// RecordFunc adapta una función a Record.
type RecordFunc func(name string) string

// Field implementa Record.
func (f RecordFunc) Field(name string) string { return f(name) }

// Matches evalúa p contra r. Contains compara en minúsculas Unicode, como ILIKE
// en PostgreSQL: no aplica plegados de varios caracteres (ß no equivale a ss).
func Matches(p Predicate, r Record) bool {
	switch p := p.(type) {
	case nil, All:
		return true
	case None:
		return false
	case In:
		v := r.Field(p.Field)
		for _, want := range p.Values {
			if v == want {
				return true
			}
		}
		return false
	case Contains:
		lower := cases.Lower(language.Und)
		return strings.Contains(lower.String(r.Field(p.Field)), lower.String(p.Term))
	case And:
		for _, sub := range p {
			if !Matches(sub, r) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range p {
			if Matches(sub, r) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
