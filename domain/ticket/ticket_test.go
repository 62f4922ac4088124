package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/domain/event"
	"ticketing/domain/repository"
	"ticketing/domain/user"
)

func newEvent() *event.Event {
	return event.New(event.Props{
		Title:    "Concert",
		Date:     time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		Location: "Arena",
		Price:    80,
	})
}

func newUser() *user.User {
	return user.New(user.Props{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
}

func TestCreate(t *testing.T) {
	e, u := newEvent(), newUser()

	tk := Create(CreateCommand{Event: e, User: u, Price: 80, Status: StatusActive})

	assert.False(t, tk.HasErrors())
	assert.False(t, tk.ID().IsZero())
	assert.Equal(t, e.ID(), tk.Event().ID)
	assert.Equal(t, "Concert", tk.Event().Title)
	assert.Equal(t, u.ID(), tk.User().ID)
	assert.Equal(t, "alice@example.com", tk.User().Email)
	assert.False(t, tk.PurchaseDate().IsZero())
	assert.Equal(t, StatusActive, tk.Status())
	assert.Equal(t, Kind, tk.EntityKind())
}

// TestCreate_SnapshotIsOwned 测试快照不随源聚合变化
func TestCreate_SnapshotIsOwned(t *testing.T) {
	e, u := newEvent(), newUser()
	tk := Create(CreateCommand{Event: e, User: u, Price: 80, Status: StatusActive})

	e.ChangeTitle("Renamed")
	u.ChangeName("Bob")

	assert.Equal(t, "Concert", tk.Event().Title)
	assert.Equal(t, "Alice", tk.User().Name)
}

func TestCreate_Invalid(t *testing.T) {
	tk := Create(CreateCommand{Event: newEvent(), User: newUser(), Price: -1, Status: "refunded"})

	require.True(t, tk.HasErrors())
	assert.Equal(t, map[string][]string{
		"status": {"status must be one of the following values: active, cancelled, used"},
		"price":  {"price must not be less than 0"},
	}, tk.Notification().ToMap())
}

func TestNew_PurchaseDateRequired(t *testing.T) {
	tk := New(Props{Status: StatusActive})
	assert.True(t, tk.Validate(FieldPurchaseDate), "构造时默认取当前时间")
}

func TestStatusTransitions(t *testing.T) {
	tk := Create(CreateCommand{Event: newEvent(), User: newUser(), Price: 10, Status: StatusActive})

	tk.MarkUsed()
	assert.Equal(t, StatusUsed, tk.Status())
	tk.Cancel()
	assert.Equal(t, StatusCancelled, tk.Status())
	assert.False(t, tk.HasErrors())

	tk.UpdateStatus("lost")
	assert.Equal(t, []string{"status must be one of the following values: active, cancelled, used"},
		tk.Notification().FieldErrors(FieldStatus))
}

func TestFilter(t *testing.T) {
	e, u := newEvent(), newUser()
	tk := Create(CreateCommand{Event: e, User: u, Price: 10, Status: StatusActive})

	assert.Nil(t, NormalizeFilter(&Filter{}))
	assert.NotNil(t, NormalizeFilter(&Filter{UserID: u.ID()}))

	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{name: "无条件", filter: nil, want: true},
		{name: "状态子串", filter: &Filter{Status: "ACT"}, want: true},
		{name: "状态不匹配", filter: &Filter{Status: "used"}, want: false},
		{name: "用户匹配", filter: &Filter{UserID: u.ID()}, want: true},
		{name: "用户不匹配", filter: &Filter{UserID: user.NewUserID()}, want: false},
		{name: "活动匹配", filter: &Filter{EventID: e.ID(), Status: "active"}, want: true},
		{name: "活动不匹配", filter: &Filter{EventID: event.NewEventID()}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tk, tt.filter))
		})
	}
}

func TestSearchParams(t *testing.T) {
	p := NewSearchParams(repository.SearchInput[Filter]{Sort: "status", SortDirection: "asc", Filter: &Filter{}})
	assert.Equal(t, "status", p.Sort())
	assert.Equal(t, repository.SortAsc, p.SortDirection())
	assert.Nil(t, p.Filter())
}
