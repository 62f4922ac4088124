package application

import (
	"context"
	"fmt"
	"time"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/logging"
	"ticketing/pricing"
)

// CreateEventInput 创建活动输入
type CreateEventInput struct {
	Title                 string
	Description           string
	Date                  time.Time
	Location              string
	Price                 float64
	TotalAvailableTickets int
}

// UpdateEventInput 更新活动输入，nil 字段保持不变
type UpdateEventInput struct {
	ID                    string
	Title                 *string
	Description           *string
	Date                  *time.Time
	Location              *string
	Price                 *float64
	TotalAvailableTickets *int
}

// ListEventsInput 活动列表输入
type ListEventsInput struct {
	PageInput

	Title    string
	Location string
	DateFrom *time.Time
	DateTo   *time.Time
	PriceMin *float64
	PriceMax *float64
}

func (in ListEventsInput) filter() *event.Filter {
	f := &event.Filter{Title: in.Title, Location: in.Location}
	if in.DateFrom != nil || in.DateTo != nil {
		f.DateRange = &event.DateRange{}
		if in.DateFrom != nil {
			f.DateRange.Start = *in.DateFrom
		}
		if in.DateTo != nil {
			f.DateRange.End = *in.DateTo
		}
	}
	if in.PriceMin != nil || in.PriceMax != nil {
		f.PriceRange = &event.PriceRange{Min: in.PriceMin, Max: in.PriceMax}
	}
	return f
}

// EventService 活动用例
type EventService struct {
	repo   event.IRepository
	tx     repository.ITransactor
	prices IPriceResolver
	config ServiceConfig
}

// NewEventService 创建活动用例，prices 为 nil 时列表使用存储的价格
func NewEventService(repo event.IRepository, tx repository.ITransactor, prices IPriceResolver, config ServiceConfig) *EventService {
	return &EventService{
		repo:   repo,
		tx:     tx,
		prices: prices,
		config: config.withDefaults("application.event"),
	}
}

// CreateEvent 创建活动
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*EventOutput, error) {
	e := event.Create(event.CreateCommand{
		Title:                 in.Title,
		Description:           in.Description,
		Date:                  in.Date,
		Location:              in.Location,
		Price:                 in.Price,
		TotalAvailableTickets: in.TotalAvailableTickets,
	})
	e.Validate(event.FieldDescription, event.FieldPrice, event.FieldTotalAvailableTickets)
	if err := e.EnsureValid(); err != nil {
		return nil, err
	}

	err := s.tx.Run(ctx, repository.TxCreate, event.Kind, func(ctx context.Context) error {
		return s.repo.Insert(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	out := ToEventOutput(e)
	return &out, nil
}

// UpdateEvent 部分更新活动，只重新校验变更的字段
func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*EventOutput, error) {
	e, err := s.load(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		e.ChangeTitle(*in.Title)
	}
	if in.Description != nil {
		e.ChangeDescription(*in.Description)
	}
	if in.Date != nil {
		e.ChangeDate(*in.Date)
	}
	if in.Location != nil {
		e.ChangeLocation(*in.Location)
	}
	if in.Price != nil {
		e.UpdatePrice(*in.Price)
	}
	if in.TotalAvailableTickets != nil {
		e.UpdateTotalAvailableTickets(*in.TotalAvailableTickets)
	}
	if err := e.EnsureValid(); err != nil {
		return nil, err
	}

	err = s.tx.Run(ctx, repository.TxUpdate, event.Kind, func(ctx context.Context) error {
		return s.repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	out := ToEventOutput(e)
	return &out, nil
}

// DeleteEvent 删除活动
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := event.ParseEventID(id)
	if err != nil {
		return err
	}
	return s.tx.Run(ctx, repository.TxDelete, event.Kind, func(ctx context.Context) error {
		return s.repo.Delete(ctx, eventID)
	})
}

// GetEvent 查询单个活动，价格为存储值
func (s *EventService) GetEvent(ctx context.Context, id string) (*EventOutput, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToEventOutput(e)
	return &out, nil
}

func (s *EventService) load(ctx context.Context, id string) (*event.Event, error) {
	eventID, err := event.ParseEventID(id)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, repository.NewNotFoundError(eventID, event.Kind)
	}
	return e, nil
}

// ListEvents 搜索活动并为当前页解析实时价格
//
// 任一活动的价格解析失败或解析出的价格不合法（负数）时整个列表失败，
// 返回 PriceResolutionError；超出 ListTimeout 时返回超时错误。
func (s *EventService) ListEvents(ctx context.Context, in ListEventsInput) (*PaginationOutput[EventOutput], error) {
	ctx, cancel := s.config.listContext(ctx)
	defer cancel()

	params := event.NewSearchParams(searchInput(in.PageInput, s.config.MaxPerPage, in.filter()))
	result, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.prices != nil && len(result.Items) > 0 {
		ids := make([]string, len(result.Items))
		for i, e := range result.Items {
			ids[i] = e.ID().String()
		}
		prices, err := s.prices.ResolveAll(ctx, ids)
		if err != nil {
			s.config.Logger.Warn(ctx, "price resolution failed for listing",
				logging.Int("page", params.Page()),
				logging.Int("items", len(ids)),
				logging.Error(err))
			return nil, err
		}
		for i, e := range result.Items {
			e.UpdatePrice(prices[i])
			if msgs := e.Notification().FieldErrors(event.FieldPrice); len(msgs) > 0 {
				return nil, &pricing.PriceResolutionError{
					EntityID: ids[i],
					Cause:    fmt.Errorf("%w: %s", pricing.ErrInvalidPrice, msgs[0]),
				}
			}
		}
	}

	return NewPaginationOutput(result, ToEventOutput), nil
}
