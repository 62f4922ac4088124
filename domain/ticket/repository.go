package ticket

import (
	"context"
	"time"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/user"
)

const (
	SortPrice     = "price"
	SortStatus    = "status"
	SortCreatedAt = "created_at"
)

// SortableFields 门票可排序字段
var SortableFields = []string{SortPrice, SortStatus, SortCreatedAt}

// DefaultSort 默认按创建时间倒序
var DefaultSort = repository.SortSpec{Field: SortCreatedAt, Direction: repository.SortDesc}

// Filter 门票过滤条件
//
// Status 为不区分大小写的子串匹配；UserID、EventID 为零值时不参与过滤。
type Filter struct {
	Status  string
	UserID  user.UserID
	EventID event.EventID
}

type SearchParams = repository.SearchParams[Filter]
type SearchResult = repository.SearchResult[*Ticket, Filter]

// IRepository 门票仓储
type IRepository interface {
	repository.ISearchableRepository[*Ticket, TicketID, Filter]

	// FindByUserID 返回用户的全部门票，按插入顺序
	FindByUserID(ctx context.Context, userID user.UserID) ([]*Ticket, error)
}

// NewSearchParams 创建规范化的门票查询参数
func NewSearchParams(input repository.SearchInput[Filter]) SearchParams {
	return repository.NewSearchParams(input, SortableFields, NormalizeFilter)
}

func NormalizeFilter(f *Filter) *Filter {
	if f == nil || (f.Status == "" && f.UserID.IsZero() && f.EventID.IsZero()) {
		return nil
	}
	out := *f
	return &out
}

// Match 判断门票是否满足过滤条件
func Match(t *Ticket, f *Filter) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && !repository.ContainsFold(string(t.status), f.Status) {
		return false
	}
	if !f.UserID.IsZero() && t.user.ID != f.UserID {
		return false
	}
	if !f.EventID.IsZero() && t.event.ID != f.EventID {
		return false
	}
	return true
}

// Comparators 可排序字段的比较函数
func Comparators() map[string]repository.Comparator[*Ticket] {
	return map[string]repository.Comparator[*Ticket]{
		SortPrice:     repository.ByNumber(func(t *Ticket) float64 { return t.price }),
		SortStatus:    repository.ByString(func(t *Ticket) string { return string(t.status) }),
		SortCreatedAt: repository.ByTime(func(t *Ticket) time.Time { return t.createdAt }),
	}
}
