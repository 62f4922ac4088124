package sql

import (
	"context"
	"database/sql"
	"strings"

	core "ticketing/data/db"
	"ticketing/data/db/dialect"
)

type insertBuilder struct {
	db      core.IDatabase
	dialect dialect.Dialect

	table   string
	columns []string
	rows    [][]any
}

func (b *insertBuilder) Columns(cols ...string) IInsertBuilder {
	b.columns = cols
	return b
}

func (b *insertBuilder) Values(vals ...any) IInsertBuilder {
	if len(vals) > 0 {
		b.rows = append(b.rows, vals)
	}
	return b
}

func (b *insertBuilder) Build() (string, []any) {
	mustIdentifier("table", b.table)
	if len(b.columns) == 0 {
		panic("sql: insert requires columns")
	}
	if len(b.rows) == 0 {
		panic("sql: insert requires at least one row")
	}

	quoted := make([]string, len(b.columns))
	for i, col := range b.columns {
		mustIdentifier("column", col)
		quoted[i] = b.dialect.QuoteIdentifier(col)
	}
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ") + ")"

	var sb strings.Builder
	args := make([]any, 0, len(b.rows)*len(b.columns))
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.dialect.QuoteIdentifier(b.table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			panic("sql: insert values length mismatch columns length")
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholder)
		args = append(args, row...)
	}
	return sb.String(), args
}

func (b *insertBuilder) Exec(ctx context.Context) (sql.Result, error) {
	q, args := b.Build()
	return b.db.Exec(ctx, q, args...)
}
