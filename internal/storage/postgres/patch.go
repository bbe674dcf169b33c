package postgres

import (
	"fmt"
	"strings"
)

// setBuilder accumulates SET assignments for a partial UPDATE so the query
// touches only the fields that were actually provided. Placeholders are
// numbered from 1 in the order fields are added; extra arguments (the WHERE
// key) continue the numbering via next().
type setBuilder struct {
	assignments []string
	args        []any
}

func (b *setBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.assignments = append(b.assignments, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.assignments) == 0
}

// next returns the placeholder number for one more argument appended after
// the SET fields.
func (b *setBuilder) next(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *setBuilder) clause() string {
	return strings.Join(b.assignments, ", ")
}
