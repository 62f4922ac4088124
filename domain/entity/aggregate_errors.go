package entity

import (
	"fmt"
	"strings"

	"ticketing/validation"
)

// EntityValidationError 实体未通过自身规则校验
type EntityValidationError struct {
	Errors []validation.FieldErrors
}

// NewEntityValidationError 根据错误收集器创建校验错误
func NewEntityValidationError(n *validation.Notification) *EntityValidationError {
	return &EntityValidationError{Errors: n.Entries()}
}

func (e *EntityValidationError) Error() string {
	return "entity validation error: " + formatFieldErrors(e.Errors)
}

// Fields 返回字段到消息列表的映射
func (e *EntityValidationError) Fields() map[string][]string {
	return toMap(e.Errors)
}

// LoadEntityError 从存储加载的数据违反实体规则
type LoadEntityError struct {
	Kind   string
	Errors []validation.FieldErrors
}

// NewLoadEntityError 根据错误收集器创建加载错误
func NewLoadEntityError(kind string, n *validation.Notification) *LoadEntityError {
	return &LoadEntityError{Kind: kind, Errors: n.Entries()}
}

func (e *LoadEntityError) Error() string {
	return fmt.Sprintf("failed to load %s: %s", e.Kind, formatFieldErrors(e.Errors))
}

// Fields 返回字段到消息列表的映射
func (e *LoadEntityError) Fields() map[string][]string {
	return toMap(e.Errors)
}

func formatFieldErrors(entries []validation.FieldErrors) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.Field+": "+strings.Join(entry.Messages, "; "))
	}
	return strings.Join(parts, ", ")
}

func toMap(entries []validation.FieldErrors) map[string][]string {
	out := make(map[string][]string, len(entries))
	for _, entry := range entries {
		out[entry.Field] = append([]string(nil), entry.Messages...)
	}
	return out
}
