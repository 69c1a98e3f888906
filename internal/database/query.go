package database

import (
	"strings"
)

// QueryBuilder converts SQL queries written with ? placeholders to the
// dialect-specific placeholder format.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts a query with ? placeholders to dialect-specific
// placeholders. SQLite queries pass through unchanged; PostgreSQL queries
// have ? rewritten to $1, $2, etc.
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1

	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}

	return result.String()
}

// BuildWithReturning appends a RETURNING clause when the dialect cannot
// report LastInsertId. Used for INSERT statements that need the new row id.
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}

// BuildForUpdate appends the dialect's row-lock clause to a SELECT so the
// row stays locked for the remainder of the transaction.
func (qb *QueryBuilder) BuildForUpdate(query string) string {
	return qb.Build(query) + qb.dialect.RowLockClause()
}
