package event

import (
	"time"

	"ticketing/domain/repository"
)

// 可排序字段
const (
	SortTitle     = "title"
	SortDate      = "date"
	SortLocation  = "location"
	SortPrice     = "price"
	SortCreatedAt = "created_at"
)

// SortableFields 活动可排序字段
var SortableFields = []string{SortTitle, SortDate, SortLocation, SortPrice, SortCreatedAt}

// DefaultSort 未指定排序时的默认顺序：最新创建在前
var DefaultSort = repository.SortSpec{Field: SortCreatedAt, Direction: repository.SortDesc}

// DateRange 日期区间（闭区间），零值边界表示不限
type DateRange struct {
	Start time.Time
	End   time.Time
}

// PriceRange 价格区间（闭区间），nil 边界表示不限
type PriceRange struct {
	Min *float64
	Max *float64
}

// Filter 活动过滤条件
type Filter struct {
	Title      string
	Location   string
	DateRange  *DateRange
	PriceRange *PriceRange
}

// SearchParams 活动查询参数
type SearchParams = repository.SearchParams[Filter]

// SearchResult 活动查询结果
type SearchResult = repository.SearchResult[*Event, Filter]

// IRepository 活动仓储
type IRepository interface {
	repository.ISearchableRepository[*Event, EventID, Filter]
}

// NewSearchParams 创建规范化的活动查询参数
func NewSearchParams(input repository.SearchInput[Filter]) SearchParams {
	return repository.NewSearchParams(input, SortableFields, NormalizeFilter)
}

// NormalizeFilter 丢弃空子条件，全部为空时返回 nil
func NormalizeFilter(f *Filter) *Filter {
	if f == nil {
		return nil
	}
	out := Filter{Title: f.Title, Location: f.Location}
	if f.DateRange != nil && !(f.DateRange.Start.IsZero() && f.DateRange.End.IsZero()) {
		dr := *f.DateRange
		out.DateRange = &dr
	}
	if f.PriceRange != nil && (f.PriceRange.Min != nil || f.PriceRange.Max != nil) {
		pr := *f.PriceRange
		out.PriceRange = &pr
	}
	if out.Title == "" && out.Location == "" && out.DateRange == nil && out.PriceRange == nil {
		return nil
	}
	return &out
}

// Match 判断活动是否满足过滤条件
//
// 文本字段为不区分大小写的子串匹配，日期与价格为闭区间包含。
func Match(e *Event, f *Filter) bool {
	if f == nil {
		return true
	}
	if f.Title != "" && !repository.ContainsFold(e.title, f.Title) {
		return false
	}
	if f.Location != "" && !repository.ContainsFold(e.location, f.Location) {
		return false
	}
	if dr := f.DateRange; dr != nil {
		if !dr.Start.IsZero() && e.date.Before(dr.Start) {
			return false
		}
		if !dr.End.IsZero() && e.date.After(dr.End) {
			return false
		}
	}
	if pr := f.PriceRange; pr != nil {
		if pr.Min != nil && e.price < *pr.Min {
			return false
		}
		if pr.Max != nil && e.price > *pr.Max {
			return false
		}
	}
	return true
}

// Comparators 可排序字段的比较函数
func Comparators() map[string]repository.Comparator[*Event] {
	return map[string]repository.Comparator[*Event]{
		SortTitle:     repository.ByString(func(e *Event) string { return e.title }),
		SortDate:      repository.ByTime(func(e *Event) time.Time { return e.date }),
		SortLocation:  repository.ByString(func(e *Event) string { return e.location }),
		SortPrice:     repository.ByNumber(func(e *Event) float64 { return e.price }),
		SortCreatedAt: repository.ByTime(func(e *Event) time.Time { return e.createdAt }),
	}
}
