// Package query builds parameterized PostgreSQL SELECT statements from a
// projection of logical field names onto table columns.
package query

import "strings"

type projected struct {
	field  string
	column string
}

// ProjectionMap binds logical field names (the names clients sort and filter
// by) to alias-qualified columns of one table. Only projected fields can
// reach generated SQL as identifiers.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields []projected
	index  map[string]int
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
// An empty schema leaves the table unqualified.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		index:  map[string]int{},
	}
}

// Project exposes column under the logical name field. Projecting a field
// twice replaces its column but keeps its original position.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	if i, ok := p.index[field]; ok {
		p.fields[i].column = qualified
		return p
	}
	p.index[field] = len(p.fields)
	p.fields = append(p.fields, projected{field: field, column: qualified})
	return p
}

// Has reports whether field is projected.
func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.index[field]
	return ok
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// From returns the FROM target, e.g. "public.books b".
func (p *ProjectionMap) From() string {
	if p.schema == "" {
		return p.table + " " + p.alias
	}
	return p.schema + "." + p.table + " " + p.alias
}

// Column returns the qualified column for field. Unprojected names are
// returned unchanged, so callers passing raw input must check Has first.
func (p *ProjectionMap) Column(field string) string {
	if i, ok := p.index[field]; ok {
		return p.fields[i].column
	}
	return field
}

// Columns returns the select list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the qualified columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	cols := make([]string, len(p.fields))
	for i, f := range p.fields {
		cols[i] = f.column
	}
	return cols
}
