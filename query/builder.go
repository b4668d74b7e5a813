/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package query assembles the parameterized listing statements: a fixed
// base select, optional filter fragments that are omitted when absent, an
// optional window count, ordering and bound pagination.
package query

import (
	"fmt"
	"strings"

	"github.com/tomoncle/flagadmin/types"
	"github.com/uptrace/bun/dialect"
)

// CountColumn is the alias of the window count added by CountTotal.
const CountColumn = "data_count"

// Builder collects the parts of one filtered select. Values only ever travel
// as arguments; the text carries '?' placeholders.
type Builder struct {
	dialect    dialect.Name
	from       string
	columns    []string
	joins      []string
	fixed      []types.QueryFilter
	filters    []types.QueryFilter
	countTotal bool
	orderBy    []string
	paginate   bool
	offset     int
	limit      int
}

// New starts a select over from, e.g. "posts AS p".
func New(d dialect.Name, from string) *Builder {
	return &Builder{dialect: d, from: from}
}

// Columns appends to the select list. An empty list selects 1.
func (b *Builder) Columns(cols ...string) *Builder {
	b.columns = append(b.columns, cols...)
	return b
}

// Join adds a join clause, e.g. "JOIN users AS u ON u.id = p.user_id".
func (b *Builder) Join(expr string) *Builder {
	b.joins = append(b.joins, expr)
	return b
}

// Where adds a fixed predicate that is always present.
func (b *Builder) Where(expr string, args ...interface{}) *Builder {
	b.fixed = append(b.fixed, *types.NewQueryFilter(expr, args...))
	return b
}

func (b *Builder) addFilter(expr string, args ...interface{}) *Builder {
	b.filters = append(b.filters, *types.NewQueryFilter(expr, args...))
	return b
}

// Keyword matches %keyword% against any of cols. A blank keyword adds nothing.
func (b *Builder) Keyword(keyword string, cols ...string) *Builder {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || len(cols) == 0 {
		return b
	}
	pattern := "%" + keyword + "%"
	parts := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		parts[i] = col + " LIKE ?"
		args[i] = pattern
	}
	return b.addFilter("("+strings.Join(parts, " OR ")+")", args...)
}

// Equal filters col = value. Zero means no filter.
func (b *Builder) Equal(col string, value int64) *Builder {
	if value == 0 {
		return b
	}
	return b.addFilter(col+" = ?", value)
}

// Range adds an inclusive lower and upper bound, each only when given.
func (b *Builder) Range(col string, min, max *int64) *Builder {
	if min != nil {
		b.addFilter(col+" >= ?", *min)
	}
	if max != nil {
		b.addFilter(col+" <= ?", *max)
	}
	return b
}

// Flags filters a JSON array column of flag codes. The set {FlagNone} selects
// rows whose stored set is empty; any other non-empty set selects rows whose
// stored set contains every given code.
func (b *Builder) Flags(col string, set types.FlagSet) *Builder {
	if set.Len() == 0 {
		return b
	}
	if set.IsNoneOnly() {
		return b.addFilter(b.emptyArray(col))
	}
	codes := set.Codes()
	switch b.dialect {
	case dialect.PG:
		return b.addFilter(col+"::jsonb @> ?::jsonb", types.FlagCodes(codes).JSON())
	case dialect.MySQL:
		return b.addFilter("JSON_CONTAINS("+col+", ?)", types.FlagCodes(codes).JSON())
	default:
		parts := make([]string, len(codes))
		args := make([]interface{}, len(codes))
		for i, code := range codes {
			parts[i] = fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", col)
			args[i] = code
		}
		return b.addFilter("("+strings.Join(parts, " AND ")+")", args...)
	}
}

func (b *Builder) emptyArray(col string) string {
	switch b.dialect {
	case dialect.PG:
		return "jsonb_array_length(" + col + "::jsonb) = 0"
	case dialect.MySQL:
		return "JSON_LENGTH(" + col + ") = 0"
	default:
		return "json_array_length(" + col + ") = 0"
	}
}

// Exists adds EXISTS (sub) when sub carries at least one optional filter.
func (b *Builder) Exists(sub *Builder) *Builder {
	if sub == nil || !sub.HasFilters() {
		return b
	}
	text, args := sub.Build()
	return b.addFilter("EXISTS ("+text+")", args...)
}

// CountTotal adds COUNT(*) OVER() to the select list so every row carries
// the filtered total.
func (b *Builder) CountTotal() *Builder {
	b.countTotal = true
	return b
}

// OrderBy appends ordering expressions in the given order.
func (b *Builder) OrderBy(exprs ...string) *Builder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

// Paginate appends LIMIT ? OFFSET ? with both values bound.
func (b *Builder) Paginate(offset, limit int) *Builder {
	b.paginate = true
	b.offset = offset
	b.limit = limit
	return b
}

// HasFilters reports whether any optional filter was added.
func (b *Builder) HasFilters() bool {
	return len(b.filters) > 0
}

// Filters returns the optional fragments in the order they were added.
func (b *Builder) Filters() []types.QueryFilter {
	out := make([]types.QueryFilter, len(b.filters))
	copy(out, b.filters)
	return out
}

// Build renders the statement and its arguments.
func (b *Builder) Build() (string, []interface{}) {
	columns := append([]string(nil), b.columns...)
	if len(columns) == 0 {
		columns = append(columns, "1")
	}
	if b.countTotal {
		columns = append(columns, "COUNT(*) OVER() AS "+CountColumn)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(columns, ", "))
	args := b.writeBody(&sb)

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.paginate {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, b.limit, b.offset)
	}
	return sb.String(), args
}

// BuildCount renders SELECT COUNT(*) over the same joins and predicates,
// without ordering or pagination.
func (b *Builder) BuildCount() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*)")
	args := b.writeBody(&sb)
	return sb.String(), args
}

func (b *Builder) writeBody(sb *strings.Builder) []interface{} {
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}

	var args []interface{}
	predicates := make([]string, 0, len(b.fixed)+len(b.filters))
	for _, group := range [][]types.QueryFilter{b.fixed, b.filters} {
		for _, f := range group {
			predicates = append(predicates, f.Schema)
			args = append(args, f.Args...)
		}
	}
	if len(predicates) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(predicates, " AND "))
	}
	return args
}
