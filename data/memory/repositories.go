package memory

import (
	"context"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

// EventRepository 活动内存仓储
type EventRepository struct {
	*Repository[*event.Event, event.EventID, event.Filter]
}

func NewEventRepository() *EventRepository {
	return &EventRepository{NewRepository[*event.Event, event.EventID](Options[*event.Event, event.Filter]{
		Kind:        event.Kind,
		Sortable:    event.SortableFields,
		Match:       event.Match,
		Comparators: event.Comparators(),
		DefaultSort: event.DefaultSort,
	})}
}

// UserRepository 用户内存仓储
type UserRepository struct {
	*Repository[*user.User, user.UserID, user.Filter]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{NewRepository[*user.User, user.UserID](Options[*user.User, user.Filter]{
		Kind:        user.Kind,
		Sortable:    user.SortableFields,
		Match:       user.Match,
		Comparators: user.Comparators(),
		DefaultSort: user.DefaultSort,
	})}
}

// FindByEmail 不区分大小写的邮箱完全匹配，返回第一个命中
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	found, err := r.FindWhere(ctx, func(u *user.User) bool { return repository.EqualFold(u.Email(), email) })
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// FindByName 不区分大小写的名称完全匹配
func (r *UserRepository) FindByName(ctx context.Context, name string) ([]*user.User, error) {
	return r.FindWhere(ctx, func(u *user.User) bool { return repository.EqualFold(u.Name(), name) })
}

// TicketRepository 门票内存仓储
type TicketRepository struct {
	*Repository[*ticket.Ticket, ticket.TicketID, ticket.Filter]
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{NewRepository[*ticket.Ticket, ticket.TicketID](Options[*ticket.Ticket, ticket.Filter]{
		Kind:        ticket.Kind,
		Sortable:    ticket.SortableFields,
		Match:       ticket.Match,
		Comparators: ticket.Comparators(),
		DefaultSort: ticket.DefaultSort,
	})}
}

// FindByUserID 返回用户的全部门票
func (r *TicketRepository) FindByUserID(ctx context.Context, userID user.UserID) ([]*ticket.Ticket, error) {
	return r.FindWhere(ctx, func(t *ticket.Ticket) bool { return t.User().ID == userID })
}

var (
	_ event.IRepository  = (*EventRepository)(nil)
	_ user.IRepository   = (*UserRepository)(nil)
	_ ticket.IRepository = (*TicketRepository)(nil)
)
