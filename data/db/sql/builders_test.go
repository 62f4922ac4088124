package sql

import (
	"context"
	dbsql "database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "ticketing/data/db"
)

// fakeDB 记录执行的语句，只用于构建器测试
type fakeDB struct {
	core.IDatabase
	dialect string
	query   string
	args    []any
}

func (f *fakeDB) GetDialectName() string { return f.dialect }

func (f *fakeDB) Exec(ctx context.Context, query string, args ...any) (dbsql.Result, error) {
	f.query, f.args = query, args
	return nil, nil
}

func TestSelect(t *testing.T) {
	s := New(&fakeDB{dialect: "sqlite"})

	q, args := s.Select("id", "title").
		From("events").
		Where(`"price" >= ?`, 10).
		Where("").
		Where(`"price" <= ?`, 50).
		OrderBy(`"price" ASC`, `"seq" ASC`).
		Limit(2).
		Offset(4).
		Build()

	assert.Equal(t, `SELECT id, title FROM "events" WHERE "price" >= ? AND "price" <= ? ORDER BY "price" ASC, "seq" ASC LIMIT ? OFFSET ?`, q)
	assert.Equal(t, []any{10, 50, 2, 4}, args)
}

func TestSelect_DefaultsAndRepeatableBuild(t *testing.T) {
	b := New(&fakeDB{dialect: "sqlite"}).Select().From("users").Limit(1)

	q1, args1 := b.Build()
	q2, args2 := b.Build()

	assert.Equal(t, `SELECT * FROM "users" LIMIT ?`, q1)
	assert.Equal(t, q1, q2)
	assert.Equal(t, args1, args2)
}

func TestSelect_UnsafeTablePanics(t *testing.T) {
	s := New(&fakeDB{dialect: "sqlite"})
	assert.Panics(t, func() { s.Select().From("users; DROP TABLE users").Build() })
}

func TestInsert(t *testing.T) {
	db := &fakeDB{dialect: "postgres"}
	s := New(db)

	_, err := s.InsertInto("users").
		Columns("id", "name").
		Values("1", "alice").
		Values("2", "bob").
		Exec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES (?, ?), (?, ?)`, db.query)
	assert.Equal(t, []any{"1", "alice", "2", "bob"}, db.args)
}

func TestInsert_Invalid(t *testing.T) {
	s := New(&fakeDB{dialect: "sqlite"})
	assert.Panics(t, func() { s.InsertInto("users").Values("1").Build() })
	assert.Panics(t, func() { s.InsertInto("users").Columns("id").Build() })
	assert.Panics(t, func() { s.InsertInto("users").Columns("id", "name").Values("1").Build() })
}

func TestUpdate(t *testing.T) {
	s := New(&fakeDB{dialect: "mysql"})

	q, args := s.Update("tickets").
		SetMap(map[string]any{"status": "used", "price": 10.5}).
		Where("`id` = ?", "t1").
		Build()

	assert.Equal(t, "UPDATE `tickets` SET `price` = ?, `status` = ? WHERE `id` = ?", q)
	assert.Equal(t, []any{10.5, "used", "t1"}, args)

	assert.Panics(t, func() { s.Update("tickets").Build() })
}

func TestDelete(t *testing.T) {
	s := New(&fakeDB{dialect: "sqlite"})

	q, args := s.DeleteFrom("events").Where(`"id" = ?`, "e1").Build()

	assert.Equal(t, `DELETE FROM "events" WHERE "id" = ?`, q)
	assert.Equal(t, []any{"e1"}, args)
}

func TestIsSafeIdentifier(t *testing.T) {
	for _, ok := range []string{"events", "_x", "a1", "events.title"} {
		assert.True(t, isSafeIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1a", "a b", "a;", ".a", "a.", "a..b", `a"`} {
		assert.False(t, isSafeIdentifier(bad), bad)
	}
}
