package postgres

import (
	"fmt"
	"strings"

	"github.com/reefet/reefet-api/internal/domain/filter"
)

type columnKind int

const (
	textColumn columnKind = iota
	uuidColumn
)

type column struct {
	expr string
	kind columnKind
}

// columns es la lista blanca campo → columna de una consulta. Un campo que no
// está aquí no llega nunca al SQL.
type columns map[string]column

// whereBuilder traduce un filter.Predicate a una condición con placeholders $n.
// Los valores viajan siempre como argumentos.
type whereBuilder struct {
	cols columns
	args []any
}

func newWhereBuilder(cols columns, args ...any) *whereBuilder {
	return &whereBuilder{cols: cols, args: args}
}

func (b *whereBuilder) build(p filter.Predicate) (string, error) {
	switch p := p.(type) {
	case nil, filter.All:
		return "TRUE", nil
	case filter.None:
		return "FALSE", nil
	case filter.In:
		col, err := b.column(p.Field)
		if err != nil {
			return "", err
		}
		if len(p.Values) == 0 {
			return "FALSE", nil
		}
		cast := "text[]"
		if col.kind == uuidColumn {
			cast = "uuid[]"
		}
		return fmt.Sprintf("%s = ANY(%s::%s)", col.expr, b.arg(append([]string(nil), p.Values...)), cast), nil
	case filter.Contains:
		col, err := b.column(p.Field)
		if err != nil {
			return "", err
		}
		expr := col.expr
		if col.kind == uuidColumn {
			expr += "::text"
		}
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, expr, b.arg("%"+escapeLike(p.Term)+"%")), nil
	case filter.And:
		return b.join(p, " AND ", "TRUE")
	case filter.Or:
		return b.join(p, " OR ", "FALSE")
	default:
		return "", fmt.Errorf("predicado no soportado: %T", p)
	}
}

func (b *whereBuilder) join(subs []filter.Predicate, op, empty string) (string, error) {
	if len(subs) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(subs))
	for _, sub := range subs {
		s, err := b.build(sub)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+s+")")
	}
	return strings.Join(parts, op), nil
}

func (b *whereBuilder) column(field string) (column, error) {
	col, ok := b.cols[field]
	if !ok {
		return column{}, fmt.Errorf("campo no filtrable: %q", field)
	}
	return col, nil
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutraliza los comodines de LIKE para que el término se busque literal.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
