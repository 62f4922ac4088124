// Package application 提供活动、用户、门票的用例实现
//
// 写用例先校验聚合（失败返回 EntityValidationError），再在事务信封中执行单个仓储变更。
// 读用例直接查询仓储，列表结果映射为分页信封。
package application

import (
	"context"
	"time"

	"ticketing/domain/repository"
	"ticketing/logging"
)

// IPriceResolver 为一页活动解析实时价格，结果顺序与 ids 一致
type IPriceResolver interface {
	ResolveAll(ctx context.Context, ids []string) ([]float64, error)
}

// ServiceConfig 用例服务配置
type ServiceConfig struct {
	// MaxPerPage 每页条数上限，不超过 repository.MaxPerPage
	MaxPerPage int

	// ListTimeout 列表用例（含价格解析）的整体超时，0 表示不设超时
	ListTimeout time.Duration

	Logger logging.Logger
}

// DefaultServiceConfig 默认服务配置
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxPerPage:  repository.MaxPerPage,
		ListTimeout: 10 * time.Second,
	}
}

func (c ServiceConfig) withDefaults(component string) ServiceConfig {
	if c.MaxPerPage <= 0 || c.MaxPerPage > repository.MaxPerPage {
		c.MaxPerPage = repository.MaxPerPage
	}
	if c.Logger == nil {
		c.Logger = logging.GetLogger()
	}
	c.Logger = c.Logger.WithFields(logging.String("component", component))
	return c
}

// PageInput 列表用例的分页与排序输入，零值表示未提供
type PageInput struct {
	Page          int
	PerPage       int
	Sort          string
	SortDirection string
}

func searchInput[F any](p PageInput, maxPerPage int, filter *F) repository.SearchInput[F] {
	perPage := p.PerPage
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return repository.SearchInput[F]{
		Page:          p.Page,
		PerPage:       perPage,
		Sort:          p.Sort,
		SortDirection: p.SortDirection,
		Filter:        filter,
	}
}

func (c ServiceConfig) listContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.ListTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.ListTimeout)
}
