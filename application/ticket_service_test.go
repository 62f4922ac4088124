package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/data/memory"
	"ticketing/domain/entity"
	"ticketing/domain/event"
	"ticketing/domain/identity"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

type ticketFixture struct {
	svc     *TicketService
	tickets *memory.TicketRepository
	event   *event.Event
	user    *user.User
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	ctx := context.Background()
	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	tickets := memory.NewTicketRepository()

	e := event.New(event.Props{Title: "Concert", Date: eventDate, Location: "Hall", Price: 55})
	u := user.New(user.Props{Name: "Alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, events.Insert(ctx, e))
	require.NoError(t, users.Insert(ctx, u))

	return &ticketFixture{
		svc:     NewTicketService(tickets, events, users, memory.NewTransactor(), testConfig()),
		tickets: tickets,
		event:   e,
		user:    u,
	}
}

func (f *ticketFixture) buy(t *testing.T, in CreateTicketInput) *TicketOutput {
	t.Helper()
	if in.EventID == "" {
		in.EventID = f.event.ID().String()
	}
	if in.UserID == "" {
		in.UserID = f.user.ID().String()
	}
	out, err := f.svc.CreateTicket(context.Background(), in)
	require.NoError(t, err)
	return out
}

func TestTicketService_CreateTicket(t *testing.T) {
	f := newTicketFixture(t)

	out := f.buy(t, CreateTicketInput{})
	assert.Equal(t, "active", out.Status, "默认状态为 active")
	assert.Equal(t, float64(55), out.Price, "默认使用活动价格")
	assert.Equal(t, f.event.ID().String(), out.EventID)
	assert.Equal(t, f.user.ID().String(), out.UserID)

	id, err := ticket.ParseTicketID(out.TicketID)
	require.NoError(t, err)
	stored, err := f.tickets.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Concert", stored.Event().Title)
	assert.Equal(t, "alice@example.com", stored.User().Email)

	price := 40.0
	discounted := f.buy(t, CreateTicketInput{Price: &price})
	assert.Equal(t, float64(40), discounted.Price)
}

func TestTicketService_CreateTicket_失败(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	negative := -5.0

	tests := []struct {
		name  string
		input CreateTicketInput
		check func(t *testing.T, err error)
	}{
		{
			name:  "活动不存在",
			input: CreateTicketInput{EventID: event.NewEventID().String(), UserID: f.user.ID().String()},
			check: func(t *testing.T, err error) {
				var nf *repository.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, event.Kind, nf.Kind)
			},
		},
		{
			name:  "用户不存在",
			input: CreateTicketInput{EventID: f.event.ID().String(), UserID: user.NewUserID().String()},
			check: func(t *testing.T, err error) {
				var nf *repository.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, user.Kind, nf.Kind)
			},
		},
		{
			name:  "非法活动标识",
			input: CreateTicketInput{EventID: "x", UserID: f.user.ID().String()},
			check: func(t *testing.T, err error) {
				var idErr *identity.InvalidIdentifierError
				assert.ErrorAs(t, err, &idErr)
			},
		},
		{
			name:  "非法状态与价格",
			input: CreateTicketInput{EventID: f.event.ID().String(), UserID: f.user.ID().String(), Status: "lost", Price: &negative},
			check: func(t *testing.T, err error) {
				var verr *entity.EntityValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"status must be one of the following values: active, cancelled, used"},
					verr.Fields()[ticket.FieldStatus])
				assert.Contains(t, verr.Fields(), ticket.FieldPrice)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateTicket(ctx, tt.input)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, 0, f.tickets.Len())
		})
	}
}

func TestTicketService_UpdateTicketStatus(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	out := f.buy(t, CreateTicketInput{})

	updated, err := f.svc.UpdateTicketStatus(ctx, out.TicketID, "used")
	require.NoError(t, err)
	assert.Equal(t, "used", updated.Status)

	_, err = f.svc.UpdateTicketStatus(ctx, out.TicketID, "refunded")
	var verr *entity.EntityValidationError
	require.ErrorAs(t, err, &verr)

	id, _ := ticket.ParseTicketID(out.TicketID)
	stored, _ := f.tickets.FindByID(ctx, id)
	assert.Equal(t, ticket.StatusUsed, stored.Status(), "非法状态不应写入")

	_, err = f.svc.UpdateTicketStatus(ctx, ticket.NewTicketID().String(), "used")
	assert.ErrorIs(t, err, repository.ErrEntityNotFound)
}

func TestTicketService_ListTickets(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	first := f.buy(t, CreateTicketInput{})
	second := f.buy(t, CreateTicketInput{Status: "cancelled"})
	third := f.buy(t, CreateTicketInput{})

	out, err := f.svc.ListTickets(ctx, ListTicketsInput{
		PageInput: PageInput{Sort: ticket.SortStatus, SortDirection: "asc"},
		Status:    "ACTIVE",
		UserID:    f.user.ID().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	ids := mapAll(out.Items, func(o TicketOutput) string { return o.TicketID })
	assert.Equal(t, []string{first.TicketID, third.TicketID}, ids, "状态相同时保持插入顺序")

	_, err = f.svc.ListTickets(ctx, ListTicketsInput{EventID: "bad"})
	var idErr *identity.InvalidIdentifierError
	assert.ErrorAs(t, err, &idErr)

	all, err := f.svc.ListUserTickets(ctx, f.user.ID().String())
	require.NoError(t, err)
	ids = mapAll(all, func(o TicketOutput) string { return o.TicketID })
	assert.Equal(t, []string{first.TicketID, second.TicketID, third.TicketID}, ids)

	none, err := f.svc.ListUserTickets(ctx, user.NewUserID().String())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPaginationOutput(t *testing.T) {
	params := event.NewSearchParams(repository.SearchInput[event.Filter]{Page: 2, PerPage: 2})
	result := repository.NewSearchResult([]*event.Event{}, 3, params)

	out := NewPaginationOutput(result, ToEventOutput)
	assert.Equal(t, &PaginationOutput[EventOutput]{
		Items:       []EventOutput{},
		Total:       3,
		CurrentPage: 2,
		LastPage:    2,
		PerPage:     2,
	}, out)
}
