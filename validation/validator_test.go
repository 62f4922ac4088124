package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string
	Age  float64
}

func newSampleValidator() *RuleValidator[*sample] {
	return NewRuleValidator[*sample]("name").
		Field("name",
			func(s *sample) error { return CheckRequired(s.Name, "name") },
			func(s *sample) error { return CheckMaxLength(s.Name, "name", 5) },
		).
		Field("age", func(s *sample) error { return CheckMin(s.Age, "age", 0) })
}

// TestRuleValidator_DefaultFields 测试默认字段组
func TestRuleValidator_DefaultFields(t *testing.T) {
	v := newSampleValidator()
	n := NewNotification()

	ok := v.Validate(n, &sample{Name: "", Age: -1})

	assert.False(t, ok)
	assert.Equal(t, map[string][]string{"name": {"name should not be empty"}}, n.ToMap())
	assert.Equal(t, []string{"name"}, v.DefaultFields())
}

// TestRuleValidator_Subset 测试部分字段校验不清除其他字段的错误
func TestRuleValidator_Subset(t *testing.T) {
	v := newSampleValidator()
	n := NewNotification()
	s := &sample{Name: "toolongname", Age: -1}

	assert.False(t, v.Validate(n, s))
	assert.False(t, v.Validate(n, s, "age"))

	assert.Equal(t, map[string][]string{
		"name": {"name must be shorter than or equal to 5 characters"},
		"age":  {"age must not be less than 0"},
	}, n.ToMap())

	s.Age = 3
	assert.True(t, v.Validate(n, s, "age"))
	assert.Len(t, n.FieldErrors("name"), 1)
}

func TestRuleValidator_UnknownFieldIgnored(t *testing.T) {
	v := newSampleValidator()
	n := NewNotification()
	assert.True(t, v.Validate(n, &sample{}, "unknown"))
	assert.False(t, n.HasErrors())
}

// TestRuleValidator_Idempotent 测试对未变化实体重复校验不产生新消息
func TestRuleValidator_Idempotent(t *testing.T) {
	v := newSampleValidator()
	n := NewNotification()
	s := &sample{Name: ""}

	v.Validate(n, s, "name")
	first := n.Entries()
	v.Validate(n, s, "name")

	assert.Equal(t, first, n.Entries())
}

func TestRuleValidator_CustomRule(t *testing.T) {
	v := NewRuleValidator[int]("value").
		Field("value", func(i int) error {
			if i%2 != 0 {
				return errors.New("value must be even")
			}
			return nil
		})

	n := NewNotification()
	assert.True(t, v.Validate(n, 2))
	assert.False(t, v.Validate(n, 3))
	assert.Equal(t, []string{"value must be even"}, n.FieldErrors("value"))
}
