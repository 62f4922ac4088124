package sql

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	core "ticketing/data/db"
	"ticketing/data/db/dialect"
)

type updateBuilder struct {
	db      core.IDatabase
	dialect dialect.Dialect

	table     string
	setCols   []string
	setArgs   []any
	whereExpr []string
	whereArgs []any
}

func (b *updateBuilder) Set(col string, val any) IUpdateBuilder {
	if col != "" {
		b.setCols = append(b.setCols, col)
		b.setArgs = append(b.setArgs, val)
	}
	return b
}

// SetMap 按列名排序后追加，保证生成的语句稳定
func (b *updateBuilder) SetMap(values map[string]any) IUpdateBuilder {
	cols := make([]string, 0, len(values))
	for k := range values {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	for _, col := range cols {
		b.Set(col, values[col])
	}
	return b
}

func (b *updateBuilder) Where(cond string, args ...any) IUpdateBuilder {
	if cond != "" {
		b.whereExpr = append(b.whereExpr, cond)
		b.whereArgs = append(b.whereArgs, args...)
	}
	return b
}

func (b *updateBuilder) Build() (string, []any) {
	mustIdentifier("table", b.table)
	if len(b.setCols) == 0 {
		panic("sql: update requires at least one column")
	}

	var sb strings.Builder
	args := make([]any, 0, len(b.setArgs)+len(b.whereArgs))
	sb.WriteString("UPDATE ")
	sb.WriteString(b.dialect.QuoteIdentifier(b.table))
	sb.WriteString(" SET ")
	for i, col := range b.setCols {
		mustIdentifier("column", col)
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.dialect.QuoteIdentifier(col))
		sb.WriteString(" = ?")
	}
	args = append(args, b.setArgs...)

	if len(b.whereExpr) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.whereExpr, " AND "))
		args = append(args, b.whereArgs...)
	}
	return sb.String(), args
}

func (b *updateBuilder) Exec(ctx context.Context) (sql.Result, error) {
	q, args := b.Build()
	return b.db.Exec(ctx, q, args...)
}
