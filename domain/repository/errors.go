package repository

import "fmt"

// 常见错误码
const (
	CodeEntityNotFound = "ENTITY_NOT_FOUND"
	CodeEntityExists   = "ENTITY_EXISTS"
	CodeTransaction    = "TRANSACTION_FAILED"
)

// ErrEntityNotFound 用于 errors.Is 判断未找到
var ErrEntityNotFound = &NotFoundError{}

// NotFoundError 更新/删除/查询的目标实体不存在
type NotFoundError struct {
	EntityID any
	Kind     string
}

// NewNotFoundError 创建未找到错误
func NewNotFoundError(id any, kind string) *NotFoundError {
	return &NotFoundError{EntityID: id, Kind: kind}
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return "entity not found"
	}
	return fmt.Sprintf("%s not found using id %v", e.Kind, e.EntityID)
}

// Is 任意 NotFoundError 均匹配 ErrEntityNotFound
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// Code 返回错误码
func (e *NotFoundError) Code() string { return CodeEntityNotFound }

// AlreadyExistsError 插入的实体标识已存在
type AlreadyExistsError struct {
	EntityID any
	Kind     string
}

// NewAlreadyExistsError 创建重复插入错误
func NewAlreadyExistsError(id any, kind string) *AlreadyExistsError {
	return &AlreadyExistsError{EntityID: id, Kind: kind}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists using id %v", e.Kind, e.EntityID)
}

// Code 返回错误码
func (e *AlreadyExistsError) Code() string { return CodeEntityExists }
