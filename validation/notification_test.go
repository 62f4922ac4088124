package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotification_AddError 测试追加与去重
func TestNotification_AddError(t *testing.T) {
	n := NewNotification()
	assert.False(t, n.HasErrors())

	n.AddError("title", "title should not be empty")
	n.AddError("title", "title must be shorter than or equal to 255 characters")
	n.AddError("title", "title should not be empty")
	n.AddError("date", "date must be a valid date")

	require.True(t, n.HasErrors())
	assert.Equal(t, []string{
		"title should not be empty",
		"title must be shorter than or equal to 255 characters",
	}, n.FieldErrors("title"))
	assert.Equal(t, map[string][]string{
		"title": {"title should not be empty", "title must be shorter than or equal to 255 characters"},
		"date":  {"date must be a valid date"},
	}, n.ToMap())
}

func TestNotification_SetError(t *testing.T) {
	n := NewNotification()
	n.AddError("name", "first")
	n.SetError("name", "replaced")
	assert.Equal(t, []string{"replaced"}, n.FieldErrors("name"))

	n.SetError("name")
	assert.False(t, n.HasErrors())
	assert.Empty(t, n.Entries())
}

// TestNotification_Entries 测试字段顺序
func TestNotification_Entries(t *testing.T) {
	n := NewNotification()
	n.AddError("b", "b1")
	n.AddError("a", "a1")
	n.AddError("b", "b2")

	assert.Equal(t, []FieldErrors{
		{Field: "b", Messages: []string{"b1", "b2"}},
		{Field: "a", Messages: []string{"a1"}},
	}, n.Entries())

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `[{"b":["b1","b2"]},{"a":["a1"]}]`, string(data))
}

func TestNotification_Copy(t *testing.T) {
	src := NewNotification()
	src.AddError("email", "email must be a valid email address")

	dst := NewNotification()
	dst.AddError("name", "name should not be empty")
	dst.Copy(src)
	dst.Copy(nil)

	assert.Equal(t, []FieldErrors{
		{Field: "name", Messages: []string{"name should not be empty"}},
		{Field: "email", Messages: []string{"email must be a valid email address"}},
	}, dst.Entries())
}

func TestNotification_ZeroValue(t *testing.T) {
	var n Notification
	assert.False(t, n.HasErrors())
	n.AddError("x", "y")
	assert.True(t, n.HasErrors())

	data, err := json.Marshal(&Notification{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
