package sqlrepo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"slices"

	core "ticketing/data/db"
	"ticketing/data/db/dialect"
	dbsql "ticketing/data/db/sql"
	"ticketing/domain"
	"ticketing/domain/repository"
)

const (
	colSeq = "seq"
	colID  = "id"
)

type scanner interface {
	Scan(dest ...any) error
}

// Identifier 可作为 SQL 主键存储的实体标识
type Identifier interface {
	comparable
	String() string
}

// mapping 实体与表之间的映射规则
type mapping[E any, F any] struct {
	table string
	kind  string
	// columns 第一列必须为 id
	columns []string
	// values 按 columns 顺序返回实体的列值
	values func(e E) []any
	// scan 从一行数据重建实体，数据违反实体规则时返回 LoadEntityError
	scan func(row scanner) (E, error)
	// where 将过滤条件追加到查询上
	where func(q dbsql.ISelectBuilder, d dialect.Dialect, f *F) dbsql.ISelectBuilder
	// sortColumns 可排序字段到列名
	sortColumns map[string]string
	sortable    []string
	defaultSort repository.SortSpec
}

// Repository 通用 SQL 可搜索仓储
//
// 写操作通过 core.Executor 使用 context 中的事务（若有）。
type Repository[E domain.IAggregate[ID], ID Identifier, F any] struct {
	db core.IDatabase
	m  mapping[E, F]
}

func (r *Repository[E, ID, F]) sql(ctx context.Context) dbsql.ISql {
	return dbsql.New(core.Executor(ctx, r.db))
}

func (r *Repository[E, ID, F]) Insert(ctx context.Context, e E) error {
	return r.BulkInsert(ctx, []E{e})
}

// BulkInsert 以单条多行 INSERT 写入，任一标识冲突时整体失败
func (r *Repository[E, ID, F]) BulkInsert(ctx context.Context, entities []E) error {
	if len(entities) == 0 {
		return nil
	}
	s := r.sql(ctx)
	b := s.InsertInto(r.m.table).Columns(r.m.columns...)
	for _, e := range entities {
		b.Values(r.m.values(e)...)
	}
	if _, err := b.Exec(ctx); err != nil {
		if s.Dialect().IsUniqueViolation(err) {
			return repository.NewAlreadyExistsError(r.conflictID(ctx, entities), r.m.kind)
		}
		return err
	}
	return nil
}

// conflictID 找出导致唯一键冲突的标识：批内重复优先，其次为已存在的标识
func (r *Repository[E, ID, F]) conflictID(ctx context.Context, entities []E) any {
	seen := make(map[ID]struct{}, len(entities))
	for _, e := range entities {
		if _, dup := seen[e.GetID()]; dup {
			return e.GetID()
		}
		seen[e.GetID()] = struct{}{}
	}
	for _, e := range entities {
		var n int
		err := r.sql(ctx).Select("COUNT(*)").From(r.m.table).
			Where(r.quote(ctx, colID)+" = ?", e.GetID().String()).
			QueryRow(ctx).Scan(&n)
		if err == nil && n > 0 {
			return e.GetID()
		}
	}
	return nil
}

// Update 更新除 id 外的全部列
func (r *Repository[E, ID, F]) Update(ctx context.Context, e E) error {
	vals := r.m.values(e)
	b := r.sql(ctx).Update(r.m.table)
	for i := 1; i < len(r.m.columns); i++ {
		b.Set(r.m.columns[i], vals[i])
	}
	res, err := b.Where(r.quote(ctx, colID)+" = ?", e.GetID().String()).Exec(ctx)
	if err != nil {
		return err
	}
	return r.requireAffected(res, e.GetID())
}

func (r *Repository[E, ID, F]) Delete(ctx context.Context, id ID) error {
	res, err := r.sql(ctx).DeleteFrom(r.m.table).
		Where(r.quote(ctx, colID)+" = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return r.requireAffected(res, id)
}

func (r *Repository[E, ID, F]) requireAffected(res stdsql.Result, id ID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.NewNotFoundError(id, r.m.kind)
	}
	return nil
}

// FindByID 不存在时返回零值与 nil
func (r *Repository[E, ID, F]) FindByID(ctx context.Context, id ID) (E, error) {
	row := r.sql(ctx).Select(r.m.columns...).From(r.m.table).
		Where(r.quote(ctx, colID)+" = ?", id.String()).
		QueryRow(ctx)
	e, err := r.m.scan(row)
	if errors.Is(err, stdsql.ErrNoRows) {
		var zero E
		return zero, nil
	}
	return e, err
}

// FindAll 按插入顺序返回全部实体
func (r *Repository[E, ID, F]) FindAll(ctx context.Context) ([]E, error) {
	return r.list(ctx, func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder {
		return q.OrderBy(r.quote(ctx, colSeq) + " ASC")
	})
}

// Search 过滤 → 排序（seq 作为次级键）→ 分页
func (r *Repository[E, ID, F]) Search(ctx context.Context, params repository.SearchParams[F]) (*repository.SearchResult[E, F], error) {
	s := r.sql(ctx)
	d := s.Dialect()

	var total int
	countQuery := r.m.where(s.Select("COUNT(*)").From(r.m.table), d, params.Filter())
	if err := countQuery.QueryRow(ctx).Scan(&total); err != nil {
		return nil, err
	}

	column, dir := r.sortColumn(params.Sort(), params.SortDirection())
	items, err := r.list(ctx, func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder {
		return r.m.where(q, d, params.Filter()).
			OrderBy(d.QuoteIdentifier(column)+" "+direction(dir), d.QuoteIdentifier(colSeq)+" ASC").
			Limit(params.PerPage()).
			Offset(params.Offset())
	})
	if err != nil {
		return nil, err
	}
	return repository.NewSearchResult(items, total, params), nil
}

func (r *Repository[E, ID, F]) SortableFields() []string {
	return slices.Clone(r.m.sortable)
}

func (r *Repository[E, ID, F]) sortColumn(field string, dir repository.SortDirection) (string, repository.SortDirection) {
	if col, ok := r.m.sortColumns[field]; ok && field != "" {
		return col, dir
	}
	return r.m.sortColumns[r.m.defaultSort.Field], r.m.defaultSort.Direction
}

func direction(dir repository.SortDirection) string {
	if dir == repository.SortDesc {
		return "DESC"
	}
	return "ASC"
}

// list 执行查询并读取全部行，返回前关闭结果集
func (r *Repository[E, ID, F]) list(ctx context.Context, build func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder) ([]E, error) {
	q := build(r.sql(ctx).Select(r.m.columns...).From(r.m.table))
	rows, err := q.Query(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]E, 0)
	for rows.Next() {
		e, err := r.m.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository[E, ID, F]) quote(ctx context.Context, column string) string {
	return dialect.FromDatabase(core.Executor(ctx, r.db)).QuoteIdentifier(column)
}
