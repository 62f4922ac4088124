package application

import (
	"context"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

// CreateTicketInput 创建门票输入
type CreateTicketInput struct {
	EventID string
	UserID  string

	// Price 为 nil 时使用活动的存储价格
	Price *float64

	// Status 为空时为 active
	Status string
}

// ListTicketsInput 门票列表输入
type ListTicketsInput struct {
	PageInput

	Status  string
	UserID  string
	EventID string
}

// TicketService 门票用例
type TicketService struct {
	tickets ticket.IRepository
	events  event.IRepository
	users   user.IRepository
	tx      repository.ITransactor
	config  ServiceConfig
}

func NewTicketService(tickets ticket.IRepository, events event.IRepository, users user.IRepository, tx repository.ITransactor, config ServiceConfig) *TicketService {
	return &TicketService{
		tickets: tickets,
		events:  events,
		users:   users,
		tx:      tx,
		config:  config.withDefaults("application.ticket"),
	}
}

// CreateTicket 为用户购买活动门票，门票保存活动与用户的快照
func (s *TicketService) CreateTicket(ctx context.Context, in CreateTicketInput) (*TicketOutput, error) {
	eventID, err := event.ParseEventID(in.EventID)
	if err != nil {
		return nil, err
	}
	userID, err := user.ParseUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, repository.NewNotFoundError(eventID, event.Kind)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.NewNotFoundError(userID, user.Kind)
	}

	price := e.Price()
	if in.Price != nil {
		price = *in.Price
	}
	status := ticket.Status(in.Status)
	if status == "" {
		status = ticket.StatusActive
	}

	t := ticket.Create(ticket.CreateCommand{Event: e, User: u, Price: price, Status: status})
	if err := t.EnsureValid(); err != nil {
		return nil, err
	}

	err = s.tx.Run(ctx, repository.TxCreate, ticket.Kind, func(ctx context.Context) error {
		return s.tickets.Insert(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	out := ToTicketOutput(t)
	return &out, nil
}

// UpdateTicketStatus 修改门票状态
func (s *TicketService) UpdateTicketStatus(ctx context.Context, id string, status string) (*TicketOutput, error) {
	ticketID, err := ticket.ParseTicketID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, repository.NewNotFoundError(ticketID, ticket.Kind)
	}

	t.UpdateStatus(ticket.Status(status))
	if err := t.EnsureValid(); err != nil {
		return nil, err
	}

	err = s.tx.Run(ctx, repository.TxUpdate, ticket.Kind, func(ctx context.Context) error {
		return s.tickets.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	out := ToTicketOutput(t)
	return &out, nil
}

// ListTickets 搜索门票
func (s *TicketService) ListTickets(ctx context.Context, in ListTicketsInput) (*PaginationOutput[TicketOutput], error) {
	filter := &ticket.Filter{Status: in.Status}
	if in.UserID != "" {
		userID, err := user.ParseUserID(in.UserID)
		if err != nil {
			return nil, err
		}
		filter.UserID = userID
	}
	if in.EventID != "" {
		eventID, err := event.ParseEventID(in.EventID)
		if err != nil {
			return nil, err
		}
		filter.EventID = eventID
	}

	ctx, cancel := s.config.listContext(ctx)
	defer cancel()

	result, err := s.tickets.Search(ctx, ticket.NewSearchParams(searchInput(in.PageInput, s.config.MaxPerPage, filter)))
	if err != nil {
		return nil, err
	}
	return NewPaginationOutput(result, ToTicketOutput), nil
}

// ListUserTickets 返回用户的全部门票，按购买顺序
func (s *TicketService) ListUserTickets(ctx context.Context, userID string) ([]TicketOutput, error) {
	id, err := user.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.FindByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapAll(tickets, ToTicketOutput), nil
}
