// Package identity 提供基于 UUID 的实体标识值对象。
package identity

import (
	"fmt"

	"github.com/google/uuid"
)

// ID 实体标识。
//
// 值语义：可直接使用 == 比较，零值表示“未设置”。
type ID struct {
	value uuid.UUID
}

// InvalidIdentifierError 非法标识字符串
type InvalidIdentifierError struct {
	Value string
	Cause error
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: must be a valid uuid", e.Value)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Cause
}

// New 生成新的随机标识
func New() ID {
	return ID{value: uuid.New()}
}

// Parse 从规范字符串解析标识
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, &InvalidIdentifierError{Value: s, Cause: err}
	}
	return ID{value: u}, nil
}

// MustParse 解析标识，失败时 panic（仅用于测试与常量）
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String 返回规范的小写连字符形式
func (id ID) String() string {
	return id.value.String()
}

// IsZero 是否为零值
func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}

// Equals 值相等比较
func (id ID) Equals(other ID) bool {
	return id.value == other.value
}

// MarshalText 实现 encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
