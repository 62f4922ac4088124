// Package memory 提供可搜索仓储的内存实现
//
// 内存实现是过滤/排序/分页语义的行为基准，其他后端的契约测试以它的结果为准。
package memory

import (
	"context"
	"slices"
	"sync"

	"ticketing/domain"
	"ticketing/domain/repository"
)

// Entity 内存仓储可存储的实体约束：聚合根且可复制
type Entity[E any, ID comparable] interface {
	domain.IAggregate[ID]
	domain.ICloneable[E]
}

// Options 实体相关的查询规则
type Options[E any, F any] struct {
	// Kind 聚合类型名，用于错误信息
	Kind string
	// Sortable 可排序字段
	Sortable []string
	// Match 过滤谓词，filter 为 nil 时应返回 true
	Match func(entity E, filter *F) bool
	// Comparators 字段比较函数
	Comparators map[string]repository.Comparator[E]
	// DefaultSort 未指定排序时使用
	DefaultSort repository.SortSpec
}

// Repository 通用内存可搜索仓储
//
// 存储与返回的都是实体副本，调用方修改返回值不会影响仓储内容。
// 插入顺序被保留，FindAll 与排序中的并列项都按插入顺序输出。
type Repository[E Entity[E, ID], ID comparable, F any] struct {
	mu    sync.RWMutex
	items []E
	opts  Options[E, F]
}

// NewRepository 创建内存仓储
func NewRepository[E Entity[E, ID], ID comparable, F any](opts Options[E, F]) *Repository[E, ID, F] {
	return &Repository[E, ID, F]{opts: opts}
}

func (r *Repository[E, ID, F]) indexOf(id ID) int {
	return slices.IndexFunc(r.items, func(e E) bool { return e.GetID() == id })
}

// Insert 插入实体，标识已存在时返回 AlreadyExistsError
func (r *Repository[E, ID, F]) Insert(ctx context.Context, e E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(e.GetID()) >= 0 {
		return repository.NewAlreadyExistsError(e.GetID(), r.opts.Kind)
	}
	r.items = append(r.items, e.Clone())
	return nil
}

// BulkInsert 批量插入，任一标识重复时不写入任何实体
func (r *Repository[E, ID, F]) BulkInsert(ctx context.Context, entities []E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[ID]struct{}, len(entities))
	for _, e := range entities {
		id := e.GetID()
		if _, dup := seen[id]; dup || r.indexOf(id) >= 0 {
			return repository.NewAlreadyExistsError(id, r.opts.Kind)
		}
		seen[id] = struct{}{}
	}
	for _, e := range entities {
		r.items = append(r.items, e.Clone())
	}
	return nil
}

// Update 替换已存在的实体，位置不变
func (r *Repository[E, ID, F]) Update(ctx context.Context, e E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(e.GetID())
	if i < 0 {
		return repository.NewNotFoundError(e.GetID(), r.opts.Kind)
	}
	r.items[i] = e.Clone()
	return nil
}

// Delete 删除实体
func (r *Repository[E, ID, F]) Delete(ctx context.Context, id ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return repository.NewNotFoundError(id, r.opts.Kind)
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// FindByID 按标识查找，不存在时返回零值
func (r *Repository[E, ID, F]) FindByID(ctx context.Context, id ID) (E, error) {
	var zero E
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return zero, nil
	}
	return r.items[i].Clone(), nil
}

// FindAll 按插入顺序返回全部实体
func (r *Repository[E, ID, F]) FindAll(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.items), nil
}

// FindWhere 按插入顺序返回满足谓词的实体
func (r *Repository[E, ID, F]) FindWhere(ctx context.Context, pred func(E) bool) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]E, 0)
	for _, e := range r.items {
		if pred(e) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// Search 过滤 → 稳定排序 → 分页
func (r *Repository[E, ID, F]) Search(ctx context.Context, params repository.SearchParams[F]) (*repository.SearchResult[E, F], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	filtered := r.applyFilter(r.items, params.Filter())
	r.mu.RUnlock()

	r.applySort(filtered, params.Sort(), params.SortDirection())
	page := paginate(filtered, params.Offset(), params.PerPage())

	return repository.NewSearchResult(cloneAll(page), len(filtered), params), nil
}

// SortableFields 返回可排序字段
func (r *Repository[E, ID, F]) SortableFields() []string {
	return slices.Clone(r.opts.Sortable)
}

// Len 当前实体数量
func (r *Repository[E, ID, F]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Repository[E, ID, F]) applyFilter(items []E, filter *F) []E {
	out := make([]E, 0, len(items))
	for _, e := range items {
		if filter == nil || r.opts.Match == nil || r.opts.Match(e, filter) {
			out = append(out, e)
		}
	}
	return out
}

// applySort 原地稳定排序，并列项保持插入顺序
func (r *Repository[E, ID, F]) applySort(items []E, field string, dir repository.SortDirection) {
	cmp, ok := r.opts.Comparators[field]
	if field == "" || !ok {
		field, dir = r.opts.DefaultSort.Field, r.opts.DefaultSort.Direction
		if cmp, ok = r.opts.Comparators[field]; !ok {
			return
		}
	}
	if dir == repository.SortDesc {
		slices.SortStableFunc(items, func(a, b E) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(items, cmp)
}

func paginate[E any](items []E, offset, limit int) []E {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func cloneAll[E domain.ICloneable[E]](items []E) []E {
	out := make([]E, len(items))
	for i, e := range items {
		out[i] = e.Clone()
	}
	return out
}
