package repository

import (
	"slices"
	"strings"
)

const (
	// DefaultPage 默认页码
	DefaultPage = 1
	// DefaultPerPage 默认每页条数
	DefaultPerPage = 15
	// MaxPerPage 每页条数上限
	MaxPerPage = 100
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid 是否为合法方向
func (d SortDirection) IsValid() bool { return d == SortAsc || d == SortDesc }

// SearchInput 未经规范化的查询输入
//
// 数值字段为 0、字符串为空、Filter 为 nil 均表示“未提供”。
type SearchInput[F any] struct {
	Page          int
	PerPage       int
	Sort          string
	SortDirection string
	Filter        *F
}

// FilterNormalizer 将原始过滤条件规范化，结果为空时返回 nil
type FilterNormalizer[F any] func(filter *F) *F

// SearchParams 规范化后的查询参数
//
// 构造时一次性完成规范化，仓储实现直接使用，不再自行推导默认值：
//   - Page >= 1；
//   - 1 <= PerPage <= MaxPerPage；
//   - Sort 仅当属于可排序字段时保留，否则为空；
//   - Sort 非空时 SortDirection 默认 desc，Sort 为空时 SortDirection 为空；
//   - Filter 由实体提供的规范化函数处理，空条件为 nil。
type SearchParams[F any] struct {
	page          int
	perPage       int
	sort          string
	sortDirection SortDirection
	filter        *F
}

// NewSearchParams 创建并规范化查询参数
func NewSearchParams[F any](input SearchInput[F], sortable []string, normalize FilterNormalizer[F]) SearchParams[F] {
	p := SearchParams[F]{
		page:    DefaultPage,
		perPage: DefaultPerPage,
	}

	if input.Page > 1 {
		p.page = input.Page
	}

	switch {
	case input.PerPage == 0:
	case input.PerPage < 1:
		p.perPage = 1
	case input.PerPage > MaxPerPage:
		p.perPage = MaxPerPage
	default:
		p.perPage = input.PerPage
	}

	if input.Sort != "" && slices.Contains(sortable, input.Sort) {
		p.sort = input.Sort
		dir := SortDirection(strings.ToLower(input.SortDirection))
		if dir.IsValid() {
			p.sortDirection = dir
		} else {
			p.sortDirection = SortDesc
		}
	}

	if normalize != nil {
		p.filter = normalize(input.Filter)
	} else {
		p.filter = input.Filter
	}

	return p
}

func (p SearchParams[F]) Page() int                    { return p.page }
func (p SearchParams[F]) PerPage() int                 { return p.perPage }
func (p SearchParams[F]) Sort() string                 { return p.sort }
func (p SearchParams[F]) SortDirection() SortDirection { return p.sortDirection }
func (p SearchParams[F]) Filter() *F                   { return p.filter }

// Offset 分页起始偏移
func (p SearchParams[F]) Offset() int {
	return (p.Page() - 1) * p.PerPage()
}

// SearchResult 分页查询结果
type SearchResult[E any, F any] struct {
	Items         []E
	Total         int
	CurrentPage   int
	PerPage       int
	LastPage      int
	Sort          string
	SortDirection SortDirection
	Filter        *F
}

// NewSearchResult 根据当前页数据、过滤后总数与查询参数构造结果
func NewSearchResult[E any, F any](items []E, total int, params SearchParams[F]) *SearchResult[E, F] {
	if items == nil {
		items = []E{}
	}
	return &SearchResult[E, F]{
		Items:         items,
		Total:         total,
		CurrentPage:   params.Page(),
		PerPage:       params.PerPage(),
		LastPage:      LastPage(total, params.PerPage()),
		Sort:          params.Sort(),
		SortDirection: params.SortDirection(),
		Filter:        params.Filter(),
	}
}

// LastPage 计算最后一页页码，total 为 0 时为 1
func LastPage(total, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		return 1
	}
	return last
}
