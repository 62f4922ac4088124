package event

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/validation"
)

func validCommand() CreateCommand {
	return CreateCommand{
		Title:                 "Test Event",
		Description:           "A description of the event",
		Date:                  time.Date(2026, 12, 1, 20, 0, 0, 0, time.UTC),
		Location:              "Test Location",
		Price:                 50,
		TotalAvailableTickets: 100,
	}
}

// countingValidator 统计校验调用次数并记录字段
type countingValidator struct {
	inner  validation.IValidator[*Event]
	calls  int
	fields [][]string
}

func (v *countingValidator) Validate(n *validation.Notification, e *Event, fields ...string) bool {
	v.calls++
	v.fields = append(v.fields, fields)
	return v.inner.Validate(n, e, fields...)
}

// TestNew 测试直接构造
func TestNew(t *testing.T) {
	e := New(Props{
		Title:                 "Test Event",
		Description:           "desc",
		Date:                  time.Now(),
		Location:              "Test Location",
		Price:                 50,
		TotalAvailableTickets: 100,
	})

	assert.False(t, e.ID().IsZero())
	assert.Equal(t, e.ID(), e.GetID())
	assert.Equal(t, "Test Event", e.Title())
	assert.Equal(t, "desc", e.Description())
	assert.Equal(t, "Test Location", e.Location())
	assert.Equal(t, 50.0, e.Price())
	assert.Equal(t, 100, e.TotalAvailableTickets())
	assert.False(t, e.CreatedAt().IsZero())
	assert.Equal(t, Kind, e.EntityKind())
	assert.False(t, e.HasErrors())

	id := NewEventID()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e = New(Props{ID: id, CreatedAt: createdAt})
	assert.Equal(t, id, e.ID())
	assert.Equal(t, createdAt, e.CreatedAt())
}

// TestCreate 测试创建命令：记录创建时间并执行一次默认校验
func TestCreate(t *testing.T) {
	before := time.Now()
	e := Create(validCommand())

	assert.False(t, e.ID().IsZero())
	assert.False(t, e.CreatedAt().Before(before))
	assert.False(t, e.HasErrors())
}

func TestCreate_Invalid(t *testing.T) {
	cmd := validCommand()
	cmd.Title = ""
	cmd.Location = strings.Repeat("x", 256)
	cmd.Date = time.Time{}
	cmd.Price = -10

	e := Create(cmd)

	require.True(t, e.HasErrors())
	assert.Equal(t, map[string][]string{
		"title":    {"title should not be empty"},
		"date":     {"date must be a valid date"},
		"location": {"location must be shorter than or equal to 255 characters"},
	}, e.Notification().ToMap(), "price 不在默认字段组中")
}

// TestMutations_RevalidateOnlyTouchedField 测试变更方法只校验对应字段
func TestMutations_RevalidateOnlyTouchedField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *Event)
		field  string
	}{
		{name: "ChangeTitle", mutate: func(e *Event) { e.ChangeTitle("New Title") }, field: FieldTitle},
		{name: "ChangeDescription", mutate: func(e *Event) { e.ChangeDescription("d") }, field: FieldDescription},
		{name: "ChangeDate", mutate: func(e *Event) { e.ChangeDate(time.Now()) }, field: FieldDate},
		{name: "ChangeLocation", mutate: func(e *Event) { e.ChangeLocation("Porto") }, field: FieldLocation},
		{name: "UpdatePrice", mutate: func(e *Event) { e.UpdatePrice(75) }, field: FieldPrice},
		{name: "UpdateTotalAvailableTickets", mutate: func(e *Event) { e.UpdateTotalAvailableTickets(10) }, field: FieldTotalAvailableTickets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &countingValidator{inner: NewValidator()}
			cmd := validCommand()
			e := New(Props{
				Title: cmd.Title, Date: cmd.Date, Location: cmd.Location,
				Price: cmd.Price, TotalAvailableTickets: cmd.TotalAvailableTickets,
				Validator: v,
			})

			tt.mutate(e)

			assert.Equal(t, 1, v.calls)
			assert.Equal(t, [][]string{{tt.field}}, v.fields)
			assert.False(t, e.HasErrors())
		})
	}
}

// TestPartialValidation_KeepsUnrelatedErrors 测试部分校验保留其他字段的旧错误
func TestPartialValidation_KeepsUnrelatedErrors(t *testing.T) {
	cmd := validCommand()
	cmd.Title = ""
	e := Create(cmd)
	require.Equal(t, []string{"title should not be empty"}, e.Notification().FieldErrors(FieldTitle))

	e.UpdatePrice(-1)

	assert.Equal(t, map[string][]string{
		"title": {"title should not be empty"},
		"price": {"price must not be less than 0"},
	}, e.Notification().ToMap())

	// 修正标题后旧错误仍然保留：错误收集器从不重置
	e.ChangeTitle("Fixed")
	assert.Equal(t, []string{"title should not be empty"}, e.Notification().FieldErrors(FieldTitle))
}

// TestValidate_Idempotent 测试对未变化实体重复校验不产生新消息
func TestValidate_Idempotent(t *testing.T) {
	cmd := validCommand()
	cmd.Title = ""
	e := Create(cmd)
	before := e.Notification().Entries()

	e.Validate(FieldTitle)
	e.Validate()

	assert.Equal(t, before, e.Notification().Entries())
}

func TestValidate_ExplicitFields(t *testing.T) {
	e := New(Props{Title: "t", Date: time.Now(), Location: "l", Price: -1, TotalAvailableTickets: -5})
	assert.True(t, e.Validate())
	assert.False(t, e.Validate(FieldPrice, FieldTotalAvailableTickets))
	assert.Equal(t, map[string][]string{
		"price":                 {"price must not be less than 0"},
		"totalAvailableTickets": {"totalAvailableTickets must not be less than 0"},
	}, e.Notification().ToMap())
}

func TestClone(t *testing.T) {
	e := Create(validCommand())
	cloned := e.Clone()

	cloned.UpdatePrice(-1)

	assert.Equal(t, 50.0, e.Price())
	assert.False(t, e.HasErrors())
	assert.True(t, cloned.HasErrors())
	assert.Equal(t, e.ID(), cloned.ID())
}

func TestParseEventID(t *testing.T) {
	id := NewEventID()
	parsed, err := ParseEventID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseEventID("not-a-uuid")
	assert.Error(t, err)
}
