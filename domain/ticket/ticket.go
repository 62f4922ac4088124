// Package ticket 定义门票聚合
//
// 门票持有活动与用户在购买时刻的快照，之后活动或用户的变更不会影响已售门票。
package ticket

import (
	"time"

	"ticketing/domain/entity"
	"ticketing/domain/event"
	"ticketing/domain/identity"
	"ticketing/domain/user"
	"ticketing/validation"
)

// Kind 聚合类型名
const Kind = "Ticket"

// Status 门票状态
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusUsed      Status = "used"
)

// Statuses 全部合法状态
var Statuses = []Status{StatusActive, StatusCancelled, StatusUsed}

// TicketID 门票标识
type TicketID struct {
	identity.ID
}

func NewTicketID() TicketID { return TicketID{ID: identity.New()} }

// ParseTicketID 解析门票标识
func ParseTicketID(s string) (TicketID, error) {
	id, err := identity.Parse(s)
	if err != nil {
		return TicketID{}, err
	}
	return TicketID{ID: id}, nil
}

// EventSnapshot 购买时刻的活动快照
type EventSnapshot struct {
	ID       event.EventID
	Title    string
	Date     time.Time
	Location string
	Price    float64
}

// SnapshotEvent 从活动聚合生成快照
func SnapshotEvent(e *event.Event) EventSnapshot {
	return EventSnapshot{
		ID:       e.ID(),
		Title:    e.Title(),
		Date:     e.Date(),
		Location: e.Location(),
		Price:    e.Price(),
	}
}

// UserSnapshot 购买时刻的用户快照（不含密码）
type UserSnapshot struct {
	ID    user.UserID
	Name  string
	Email string
}

// SnapshotUser 从用户聚合生成快照
func SnapshotUser(u *user.User) UserSnapshot {
	return UserSnapshot{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

// Props 直接构造门票所需的字段，PurchaseDate 为空时取当前时间
type Props struct {
	ID           TicketID
	Event        EventSnapshot
	User         UserSnapshot
	PurchaseDate time.Time
	Price        float64
	Status       Status
	CreatedAt    time.Time
	Validator    validation.IValidator[*Ticket]
}

// CreateCommand 创建门票的命令
type CreateCommand struct {
	Event  *event.Event
	User   *user.User
	Price  float64
	Status Status
}

// Ticket 门票聚合
type Ticket struct {
	entity.AggregateRoot

	id           TicketID
	event        EventSnapshot
	user         UserSnapshot
	purchaseDate time.Time
	price        float64
	status       Status
	createdAt    time.Time

	validator validation.IValidator[*Ticket]
}

// New 直接构造门票，不执行校验
func New(props Props) *Ticket {
	t := &Ticket{
		id:           props.ID,
		event:        props.Event,
		user:         props.User,
		purchaseDate: props.PurchaseDate,
		price:        props.Price,
		status:       props.Status,
		createdAt:    props.CreatedAt,
		validator:    props.Validator,
	}
	now := time.Now()
	if t.id.IsZero() {
		t.id = NewTicketID()
	}
	if t.purchaseDate.IsZero() {
		t.purchaseDate = now
	}
	if t.createdAt.IsZero() {
		t.createdAt = now
	}
	if t.validator == nil {
		t.validator = NewValidator()
	}
	return t
}

// Create 为活动与用户创建门票并校验默认字段组
func Create(cmd CreateCommand) *Ticket {
	t := New(Props{
		Event:     SnapshotEvent(cmd.Event),
		User:      SnapshotUser(cmd.User),
		Price:     cmd.Price,
		Status:    cmd.Status,
		CreatedAt: time.Now(),
	})
	t.Validate()
	return t
}

// Validate 校验指定字段，未指定时校验 {status, price, purchaseDate}
func (t *Ticket) Validate(fields ...string) bool {
	return t.validator.Validate(t.Notification(), t, fields...)
}

func (t *Ticket) GetID() TicketID         { return t.id }
func (t *Ticket) EntityKind() string      { return Kind }
func (t *Ticket) ID() TicketID            { return t.id }
func (t *Ticket) Event() EventSnapshot    { return t.event }
func (t *Ticket) User() UserSnapshot      { return t.user }
func (t *Ticket) PurchaseDate() time.Time { return t.purchaseDate }
func (t *Ticket) Price() float64          { return t.price }
func (t *Ticket) Status() Status          { return t.status }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }

// UpdateStatus 修改状态，仅重新校验 status
func (t *Ticket) UpdateStatus(status Status) {
	t.status = status
	t.Validate(FieldStatus)
}

func (t *Ticket) Cancel()   { t.UpdateStatus(StatusCancelled) }
func (t *Ticket) MarkUsed() { t.UpdateStatus(StatusUsed) }

// Clone 返回独立副本，快照为值类型直接复制
func (t *Ticket) Clone() *Ticket {
	cloned := *t
	cloned.AggregateRoot = t.CloneRoot()
	return &cloned
}
