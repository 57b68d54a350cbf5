package query

import (
	"reflect"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term keyed by logical field name.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields reads a sort expression such as "Title,-CreatedAt".
// A leading "-" sorts that field descending; blank terms are skipped.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for term := range strings.SplitSeq(s, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		name, desc := strings.CutPrefix(term, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// Builder accumulates WHERE conditions and ordering for a projection and
// renders SELECT, COUNT, and paged statements. Placeholders are numbered
// as conditions are added, so every rendering shares one argument list.
type Builder struct {
	projection  *ProjectionMap
	where       []string
	args        []any
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder that orders by defaultSort unless
// OrderByFields supplies an override.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{projection: projection, defaultSort: defaultSort}
}

// OrderByFields overrides the default ordering. Fields the projection does
// not expose are dropped at render time, so untrusted sort input never
// reaches the statement text.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals filters field = value. A nil value (including a typed nil
// pointer) adds nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.where = append(b.where, b.projection.Column(field)+" = "+b.bind(value))
	return b
}

// WhereContains filters field by case-insensitive substring. Nil or empty
// text adds nothing.
func (b *Builder) WhereContains(field string, text *string) *Builder {
	if text == nil || *text == "" {
		return b
	}
	b.where = append(b.where, b.projection.Column(field)+" ILIKE "+b.bind(containsPattern(*text)))
	return b
}

// WhereSearch matches text as a case-insensitive substring of any of fields.
func (b *Builder) WhereSearch(text *string, fields ...string) *Builder {
	if text == nil || *text == "" || len(fields) == 0 {
		return b
	}

	pattern := containsPattern(*text)
	terms := make([]string, len(fields))
	for i, field := range fields {
		terms[i] = b.projection.Column(field) + " ILIKE " + b.bind(pattern)
	}
	b.where = append(b.where, "("+strings.Join(terms, " OR ")+")")
	return b
}

// Build renders the ordered SELECT.
func (b *Builder) Build() (string, []any) {
	return b.selectFrom() + b.whereClause() + b.orderClause(), b.args
}

// BuildCount renders SELECT COUNT(*) under the same conditions.
func (b *Builder) BuildCount() (string, []any) {
	return "SELECT COUNT(*) FROM " + b.projection.From() + b.whereClause(), b.args
}

// BuildPage renders the ordered SELECT limited to one 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	offset := max(page-1, 0) * pageSize
	sql := b.selectFrom() + b.whereClause() + b.orderClause() +
		" LIMIT " + strconv.Itoa(pageSize) + " OFFSET " + strconv.Itoa(offset)
	return sql, b.args
}

// BuildSingle renders a lookup of one row by idField, ignoring any
// accumulated conditions and ordering.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return b.selectFrom() + " WHERE " + b.projection.Column(idField) + " = $1", []any{id}
}

func (b *Builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *Builder) selectFrom() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From()
}

func (b *Builder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func (b *Builder) orderClause() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}

	var terms []string
	for _, f := range fields {
		if !b.projection.Has(f.Field) {
			continue
		}
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		terms = append(terms, b.projection.Column(f.Field)+dir)
	}

	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps text for a substring ILIKE match, escaping the
// pattern metacharacters it contains.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
