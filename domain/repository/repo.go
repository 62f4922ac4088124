// Package repository 定义可搜索仓储契约与查询参数/结果
package repository

import (
	"context"

	"ticketing/domain"
)

// ISearchableRepository 可搜索仓储接口
//
// 所有实现（内存、SQL 等）必须提供完全一致的过滤/排序/分页语义：
//  1. 过滤：对全量数据应用 params.Filter()；
//  2. 排序：params.Sort() 非空时按字段稳定排序，为空时使用实体声明的默认排序；
//  3. 分页：截取 [(page-1)*perPage, page*perPage)。
//
// Total 为过滤后、分页前的数量。
type ISearchableRepository[E domain.IAggregate[ID], ID comparable, F any] interface {
	// Insert 插入实体
	Insert(ctx context.Context, e E) error

	// BulkInsert 批量插入实体，按给定顺序写入
	BulkInsert(ctx context.Context, entities []E) error

	// Update 更新实体，实体不存在时返回 NotFoundError
	Update(ctx context.Context, e E) error

	// Delete 删除实体，实体不存在时返回 NotFoundError
	Delete(ctx context.Context, id ID) error

	// FindByID 按标识查找，不存在时返回零值与 nil 错误
	FindByID(ctx context.Context, id ID) (E, error)

	// FindAll 按插入顺序返回全部实体
	FindAll(ctx context.Context) ([]E, error)

	// Search 过滤 → 排序 → 分页
	Search(ctx context.Context, params SearchParams[F]) (*SearchResult[E, F], error)

	// SortableFields 返回可排序字段
	SortableFields() []string
}
