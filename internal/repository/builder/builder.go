package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct SELECT queries for PostgreSQL.
type SQLBuilder struct {
	table   string
	columns []string
	joins   []string
	orderBy []string
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Join adds a JOIN clause, e.g. Join("LEFT", "employees m", "m.emp_no = e.mgr_no").
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// OrderBy adds an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Build constructs the final SQL string.
func (b *SQLBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	return sb.String()
}
