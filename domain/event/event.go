// Package event 定义活动聚合及其查询规则
package event

import (
	"time"

	"ticketing/domain/entity"
	"ticketing/domain/identity"
	"ticketing/validation"
)

// Kind 聚合类型名
const Kind = "Event"

// EventID 活动标识
type EventID struct {
	identity.ID
}

// NewEventID 生成新的活动标识
func NewEventID() EventID { return EventID{ID: identity.New()} }

// ParseEventID 解析活动标识
func ParseEventID(s string) (EventID, error) {
	id, err := identity.Parse(s)
	if err != nil {
		return EventID{}, err
	}
	return EventID{ID: id}, nil
}

// Props 直接构造活动所需的字段，ID 与 CreatedAt 为空时自动生成
type Props struct {
	ID                    EventID
	Title                 string
	Description           string
	Date                  time.Time
	Location              string
	Price                 float64
	TotalAvailableTickets int
	CreatedAt             time.Time

	// Validator 为空时使用 NewValidator()
	Validator validation.IValidator[*Event]
}

// CreateCommand 创建活动的命令
type CreateCommand struct {
	Title                 string
	Description           string
	Date                  time.Time
	Location              string
	Price                 float64
	TotalAvailableTickets int
}

// Event 活动聚合
type Event struct {
	entity.AggregateRoot

	id                    EventID
	title                 string
	description           string
	date                  time.Time
	location              string
	price                 float64
	totalAvailableTickets int
	createdAt             time.Time

	validator validation.IValidator[*Event]
}

// New 直接构造活动，不执行校验
func New(props Props) *Event {
	e := &Event{
		id:                    props.ID,
		title:                 props.Title,
		description:           props.Description,
		date:                  props.Date,
		location:              props.Location,
		price:                 props.Price,
		totalAvailableTickets: props.TotalAvailableTickets,
		createdAt:             props.CreatedAt,
		validator:             props.Validator,
	}
	if e.id.IsZero() {
		e.id = NewEventID()
	}
	if e.createdAt.IsZero() {
		e.createdAt = time.Now()
	}
	if e.validator == nil {
		e.validator = NewValidator()
	}
	return e
}

// Create 创建活动：记录创建时间并校验默认字段组
func Create(cmd CreateCommand) *Event {
	e := New(Props{
		Title:                 cmd.Title,
		Description:           cmd.Description,
		Date:                  cmd.Date,
		Location:              cmd.Location,
		Price:                 cmd.Price,
		TotalAvailableTickets: cmd.TotalAvailableTickets,
		CreatedAt:             time.Now(),
	})
	e.Validate()
	return e
}

// Validate 校验指定字段，未指定时校验默认字段组 {title, date, location}
func (e *Event) Validate(fields ...string) bool {
	return e.validator.Validate(e.Notification(), e, fields...)
}

func (e *Event) GetID() EventID             { return e.id }
func (e *Event) EntityKind() string         { return Kind }
func (e *Event) ID() EventID                { return e.id }
func (e *Event) Title() string              { return e.title }
func (e *Event) Description() string        { return e.description }
func (e *Event) Date() time.Time            { return e.date }
func (e *Event) Location() string           { return e.location }
func (e *Event) Price() float64             { return e.price }
func (e *Event) TotalAvailableTickets() int { return e.totalAvailableTickets }
func (e *Event) CreatedAt() time.Time       { return e.createdAt }

// ChangeTitle 修改标题，仅重新校验 title
func (e *Event) ChangeTitle(title string) {
	e.title = title
	e.Validate(FieldTitle)
}

// ChangeDescription 修改描述，仅重新校验 description
func (e *Event) ChangeDescription(description string) {
	e.description = description
	e.Validate(FieldDescription)
}

// ChangeDate 修改日期，仅重新校验 date
func (e *Event) ChangeDate(date time.Time) {
	e.date = date
	e.Validate(FieldDate)
}

// ChangeLocation 修改地点，仅重新校验 location
func (e *Event) ChangeLocation(location string) {
	e.location = location
	e.Validate(FieldLocation)
}

// UpdatePrice 更新价格，仅重新校验 price
func (e *Event) UpdatePrice(price float64) {
	e.price = price
	e.Validate(FieldPrice)
}

// UpdateTotalAvailableTickets 更新可售票数，仅重新校验 totalAvailableTickets
func (e *Event) UpdateTotalAvailableTickets(total int) {
	e.totalAvailableTickets = total
	e.Validate(FieldTotalAvailableTickets)
}

// Clone 返回独立副本
func (e *Event) Clone() *Event {
	cloned := *e
	cloned.AggregateRoot = e.CloneRoot()
	return &cloned
}
