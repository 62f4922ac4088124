package user

import (
	"context"
	"time"

	"ticketing/domain/repository"
)

const (
	SortName      = "name"
	SortEmail     = "email"
	SortCreatedAt = "created_at"
)

// SortableFields 用户可排序字段
var SortableFields = []string{SortName, SortEmail, SortCreatedAt}

// DefaultSort 默认按创建时间倒序
var DefaultSort = repository.SortSpec{Field: SortCreatedAt, Direction: repository.SortDesc}

// Filter 用户过滤条件，字段均为不区分大小写的子串匹配
type Filter struct {
	Name  string
	Email string
}

type SearchParams = repository.SearchParams[Filter]
type SearchResult = repository.SearchResult[*User, Filter]

// IRepository 用户仓储
type IRepository interface {
	repository.ISearchableRepository[*User, UserID, Filter]

	// FindByEmail 按邮箱查找（不区分大小写的完全匹配），不存在时返回 nil, nil
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByName 按名称查找（不区分大小写的完全匹配），按插入顺序返回
	FindByName(ctx context.Context, name string) ([]*User, error)
}

// NewSearchParams 创建规范化的用户查询参数
func NewSearchParams(input repository.SearchInput[Filter]) SearchParams {
	return repository.NewSearchParams(input, SortableFields, NormalizeFilter)
}

// NormalizeFilter 两个条件都为空时返回 nil
func NormalizeFilter(f *Filter) *Filter {
	if f == nil || (f.Name == "" && f.Email == "") {
		return nil
	}
	out := *f
	return &out
}

// Match 判断用户是否满足过滤条件
func Match(u *User, f *Filter) bool {
	if f == nil {
		return true
	}
	if f.Name != "" && !repository.ContainsFold(u.name, f.Name) {
		return false
	}
	if f.Email != "" && !repository.ContainsFold(u.email, f.Email) {
		return false
	}
	return true
}

// Comparators 可排序字段的比较函数
func Comparators() map[string]repository.Comparator[*User] {
	return map[string]repository.Comparator[*User]{
		SortName:      repository.ByString(func(u *User) string { return u.name }),
		SortEmail:     repository.ByString(func(u *User) string { return u.email }),
		SortCreatedAt: repository.ByTime(func(u *User) time.Time { return u.createdAt }),
	}
}
