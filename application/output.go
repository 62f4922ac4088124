package application

import (
	"time"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/ticket"
	"ticketing/domain/user"
)

// EventOutput 活动输出
type EventOutput struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	Description           *string   `json:"description"`
	Date                  time.Time `json:"date"`
	Location              string    `json:"location"`
	Price                 float64   `json:"price"`
	TotalAvailableTickets int       `json:"totalAvailableTickets"`
	CreatedAt             time.Time `json:"created_at"`
}

// ToEventOutput 映射活动，空描述输出为 null
func ToEventOutput(e *event.Event) EventOutput {
	out := EventOutput{
		ID:                    e.ID().String(),
		Title:                 e.Title(),
		Date:                  e.Date(),
		Location:              e.Location(),
		Price:                 e.Price(),
		TotalAvailableTickets: e.TotalAvailableTickets(),
		CreatedAt:             e.CreatedAt(),
	}
	if d := e.Description(); d != "" {
		out.Description = &d
	}
	return out
}

// UserOutput 用户输出，不包含密码
type UserOutput struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserOutput(u *user.User) UserOutput {
	return UserOutput{
		UserID:    u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
	}
}

// TicketOutput 门票输出
type TicketOutput struct {
	TicketID     string    `json:"ticketId"`
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToTicketOutput(t *ticket.Ticket) TicketOutput {
	return TicketOutput{
		TicketID:     t.ID().String(),
		EventID:      t.Event().ID.String(),
		UserID:       t.User().ID.String(),
		PurchaseDate: t.PurchaseDate(),
		Price:        t.Price(),
		Status:       string(t.Status()),
		CreatedAt:    t.CreatedAt(),
	}
}

// PaginationOutput 分页信封
type PaginationOutput[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
}

// NewPaginationOutput 按仓储顺序映射查询结果
func NewPaginationOutput[E any, F any, T any](result *repository.SearchResult[E, F], mapper func(E) T) *PaginationOutput[T] {
	return &PaginationOutput[T]{
		Items:       mapAll(result.Items, mapper),
		Total:       result.Total,
		CurrentPage: result.CurrentPage,
		LastPage:    result.LastPage,
		PerPage:     result.PerPage,
	}
}

func mapAll[E any, T any](items []E, mapper func(E) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = mapper(item)
	}
	return out
}
