// Package validation 提供字段级错误收集与实体校验规则。
package validation

import (
	"bytes"
	"encoding/json"
)

// FieldErrors 单个字段的错误消息
type FieldErrors struct {
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// Notification 字段错误收集器
//
// 约定：
//   - 以字段名为键，消息按添加顺序保存；
//   - AddError 只追加，不覆盖已有消息；同一字段的相同消息只保留一份；
//   - 字段按首次出现顺序输出。
//
// Notification 由单个聚合独占，不做并发保护。
type Notification struct {
	order  []string
	errors map[string][]string
}

// NewNotification 创建空的收集器
func NewNotification() *Notification {
	return &Notification{errors: make(map[string][]string)}
}

// AddError 为字段追加一条错误消息
func (n *Notification) AddError(field, message string) {
	if n.errors == nil {
		n.errors = make(map[string][]string)
	}
	existing, ok := n.errors[field]
	if !ok {
		n.order = append(n.order, field)
	}
	for _, m := range existing {
		if m == message {
			return
		}
	}
	n.errors[field] = append(existing, message)
}

// SetError 用给定消息替换字段的全部错误
func (n *Notification) SetError(field string, messages ...string) {
	if n.errors == nil {
		n.errors = make(map[string][]string)
	}
	if _, ok := n.errors[field]; !ok {
		n.order = append(n.order, field)
	}
	n.errors[field] = append([]string(nil), messages...)
}

// HasErrors 至少一个字段存在错误消息时返回 true
func (n *Notification) HasErrors() bool {
	for _, msgs := range n.errors {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// FieldErrors 返回字段的错误消息副本
func (n *Notification) FieldErrors(field string) []string {
	return append([]string(nil), n.errors[field]...)
}

// Copy 合并另一个收集器中的全部消息
func (n *Notification) Copy(other *Notification) {
	if other == nil {
		return
	}
	for _, entry := range other.Entries() {
		for _, msg := range entry.Messages {
			n.AddError(entry.Field, msg)
		}
	}
}

// ToMap 返回字段到消息列表的映射副本
func (n *Notification) ToMap() map[string][]string {
	out := make(map[string][]string, len(n.errors))
	for field, msgs := range n.errors {
		if len(msgs) == 0 {
			continue
		}
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// Entries 按字段首次出现顺序返回错误列表
func (n *Notification) Entries() []FieldErrors {
	entries := make([]FieldErrors, 0, len(n.order))
	for _, field := range n.order {
		msgs := n.errors[field]
		if len(msgs) == 0 {
			continue
		}
		entries = append(entries, FieldErrors{Field: field, Messages: append([]string(nil), msgs...)})
	}
	return entries
}

// MarshalJSON 序列化为有序的 [{"field": ["msg", ...]}, ...]
func (n *Notification) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, entry := range n.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(entry.Messages)
		if err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
