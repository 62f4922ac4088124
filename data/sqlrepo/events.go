package sqlrepo

import (
	"ticketing/data/db"
	"ticketing/data/db/dialect"
	dbsql "ticketing/data/db/sql"
	"ticketing/domain/entity"
	"ticketing/domain/event"
)

// EventRepository 活动 SQL 仓储
type EventRepository struct {
	*Repository[*event.Event, event.EventID, event.Filter]
}

// NewEventRepository 创建活动仓储，表结构由 Migrate 创建
func NewEventRepository(database db.IDatabase) *EventRepository {
	return &EventRepository{&Repository[*event.Event, event.EventID, event.Filter]{
		db: database,
		m: mapping[*event.Event, event.Filter]{
			table: "events",
			kind:  event.Kind,
			columns: []string{
				colID, "title", "description", "date", "location",
				"price", "total_available_tickets", "created_at",
			},
			values: func(e *event.Event) []any {
				return []any{
					e.ID().String(), e.Title(), e.Description(), dbTime(e.Date()), e.Location(),
					e.Price(), e.TotalAvailableTickets(), dbTime(e.CreatedAt()),
				}
			},
			scan:  scanEvent,
			where: eventWhere,
			sortColumns: map[string]string{
				event.SortTitle:     "title",
				event.SortDate:      "date",
				event.SortLocation:  "location",
				event.SortPrice:     "price",
				event.SortCreatedAt: "created_at",
			},
			sortable:    event.SortableFields,
			defaultSort: event.DefaultSort,
		},
	}}
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		id, title, description, location string
		date, createdAt                   dbTime
		price                             float64
		total                             int
	)
	if err := row.Scan(&id, &title, &description, &date, &location, &price, &total, &createdAt); err != nil {
		return nil, err
	}
	eventID, err := event.ParseEventID(id)
	if err != nil {
		return nil, err
	}

	e := event.New(event.Props{
		ID:                    eventID,
		Title:                 title,
		Description:           description,
		Date:                  date.Time(),
		Location:              location,
		Price:                 price,
		TotalAvailableTickets: total,
		CreatedAt:             createdAt.Time(),
	})
	if !e.Validate() {
		return nil, entity.NewLoadEntityError(event.Kind, e.Notification())
	}
	return e, nil
}

func eventWhere(q dbsql.ISelectBuilder, d dialect.Dialect, f *event.Filter) dbsql.ISelectBuilder {
	if f == nil {
		return q
	}
	if f.Title != "" {
		q = q.Where(d.ContainsFold("title"), f.Title)
	}
	if f.Location != "" {
		q = q.Where(d.ContainsFold("location"), f.Location)
	}
	if dr := f.DateRange; dr != nil {
		switch {
		case dr.Start.IsZero() || dr.Start.Before(minTime):
		case dr.Start.After(maxTime):
			q = q.Where("1 = 0")
		default:
			q = q.Where(d.QuoteIdentifier("date")+" >= ?", dbTime(dr.Start))
		}
		switch {
		case dr.End.IsZero() || dr.End.After(maxTime):
		case dr.End.Before(minTime):
			q = q.Where("1 = 0")
		default:
			q = q.Where(d.QuoteIdentifier("date")+" <= ?", dbTime(dr.End))
		}
	}
	if pr := f.PriceRange; pr != nil {
		if pr.Min != nil {
			q = q.Where(d.QuoteIdentifier("price")+" >= ?", *pr.Min)
		}
		if pr.Max != nil {
			q = q.Where(d.QuoteIdentifier("price")+" <= ?", *pr.Max)
		}
	}
	return q
}

var _ event.IRepository = (*EventRepository)(nil)
