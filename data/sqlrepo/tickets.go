package sqlrepo

import (
	"context"

	"ticketing/data/db"
	"ticketing/data/db/dialect"
	dbsql "ticketing/data/db/sql"
	"ticketing/domain/entity"
	"ticketing/domain/event"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

// TicketRepository 门票 SQL 仓储，活动与用户快照以冗余列保存
type TicketRepository struct {
	*Repository[*ticket.Ticket, ticket.TicketID, ticket.Filter]
}

func NewTicketRepository(database db.IDatabase) *TicketRepository {
	return &TicketRepository{&Repository[*ticket.Ticket, ticket.TicketID, ticket.Filter]{
		db: database,
		m: mapping[*ticket.Ticket, ticket.Filter]{
			table: "tickets",
			kind:  ticket.Kind,
			columns: []string{
				colID,
				"event_id", "event_title", "event_date", "event_location", "event_price",
				"user_id", "user_name", "user_email",
				"purchase_date", "price", "status", "created_at",
			},
			values: func(t *ticket.Ticket) []any {
				ev, u := t.Event(), t.User()
				return []any{
					t.ID().String(),
					ev.ID.String(), ev.Title, dbTime(ev.Date), ev.Location, ev.Price,
					u.ID.String(), u.Name, u.Email,
					dbTime(t.PurchaseDate()), t.Price(), string(t.Status()), dbTime(t.CreatedAt()),
				}
			},
			scan:  scanTicket,
			where: ticketWhere,
			sortColumns: map[string]string{
				ticket.SortPrice:     "price",
				ticket.SortStatus:    "status",
				ticket.SortCreatedAt: "created_at",
			},
			sortable:    ticket.SortableFields,
			defaultSort: ticket.DefaultSort,
		},
	}}
}

// FindByUserID 返回用户的全部门票，按插入顺序
func (r *TicketRepository) FindByUserID(ctx context.Context, userID user.UserID) ([]*ticket.Ticket, error) {
	return r.list(ctx, func(q dbsql.ISelectBuilder) dbsql.ISelectBuilder {
		d := r.sql(ctx).Dialect()
		return q.Where(d.QuoteIdentifier("user_id")+" = ?", userID.String()).
			OrderBy(d.QuoteIdentifier(colSeq) + " ASC")
	})
}

func scanTicket(row scanner) (*ticket.Ticket, error) {
	var (
		id, eventID, eventTitle, eventLocation string
		userID, userName, userEmail, status    string
		eventDate, purchaseDate, createdAt     dbTime
		eventPrice, price                      float64
	)
	err := row.Scan(
		&id,
		&eventID, &eventTitle, &eventDate, &eventLocation, &eventPrice,
		&userID, &userName, &userEmail,
		&purchaseDate, &price, &status, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	ticketID, err := ticket.ParseTicketID(id)
	if err != nil {
		return nil, err
	}
	evID, err := event.ParseEventID(eventID)
	if err != nil {
		return nil, err
	}
	uID, err := user.ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	t := ticket.New(ticket.Props{
		ID: ticketID,
		Event: ticket.EventSnapshot{
			ID:       evID,
			Title:    eventTitle,
			Date:     eventDate.Time(),
			Location: eventLocation,
			Price:    eventPrice,
		},
		User:         ticket.UserSnapshot{ID: uID, Name: userName, Email: userEmail},
		PurchaseDate: purchaseDate.Time(),
		Price:        price,
		Status:       ticket.Status(status),
		CreatedAt:    createdAt.Time(),
	})
	if !t.Validate() {
		return nil, entity.NewLoadEntityError(ticket.Kind, t.Notification())
	}
	return t, nil
}

func ticketWhere(q dbsql.ISelectBuilder, d dialect.Dialect, f *ticket.Filter) dbsql.ISelectBuilder {
	if f == nil {
		return q
	}
	if f.Status != "" {
		q = q.Where(d.ContainsFold("status"), f.Status)
	}
	if !f.UserID.IsZero() {
		q = q.Where(d.QuoteIdentifier("user_id")+" = ?", f.UserID.String())
	}
	if !f.EventID.IsZero() {
		q = q.Where(d.QuoteIdentifier("event_id")+" = ?", f.EventID.String())
	}
	return q
}

var _ ticket.IRepository = (*TicketRepository)(nil)
