// Package errors 定义对外统一的错误码体系
//
// 领域层与基础设施层返回各自的具体错误类型，在边界处通过 Normalize 映射为 AppError。
package errors

import (
	stdErrors "errors"
	"fmt"
	"maps"
)

// ErrorCode 错误代码类型
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeCanceled     ErrorCode = "CANCELED"

	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeDependency ErrorCode = "DEPENDENCY_ERROR"

	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
	ErrCodeCache    ErrorCode = "CACHE_ERROR"
)

// IError 带错误码的错误
type IError interface {
	error
	Code() ErrorCode
	Message() string
	Cause() error
	Details() map[string]any
	WithDetails(details map[string]any) IError
}

// AppError 应用错误实现
type AppError struct {
	code    ErrorCode
	message string
	cause   error
	details map[string]any
}

// NewError 创建新错误
func NewError(code ErrorCode, message string) IError {
	return &AppError{code: code, message: message}
}

// WrapError 以给定错误码包装 err，err 为 nil 时返回 nil
func WrapError(err error, code ErrorCode, message string) IError {
	if err == nil {
		return nil
	}
	return &AppError{code: code, message: message, cause: err}
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *AppError) Code() ErrorCode { return e.code }
func (e *AppError) Message() string { return e.message }
func (e *AppError) Cause() error    { return e.cause }
func (e *AppError) Unwrap() error   { return e.cause }

// Details 返回详情副本
func (e *AppError) Details() map[string]any {
	out := make(map[string]any, len(e.details))
	maps.Copy(out, e.details)
	return out
}

// Is 同错误码的 AppError 视为相同
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.code == e.code
}

// WithDetails 返回合并详情后的新错误
func (e *AppError) WithDetails(details map[string]any) IError {
	merged := e.Details()
	maps.Copy(merged, details)
	return &AppError{code: e.code, message: e.message, cause: e.cause, details: merged}
}

// 预定义错误，用于 errors.Is 按错误码判断
var (
	ErrNotFound     = NewError(ErrCodeNotFound, "资源未找到")
	ErrInvalidInput = NewError(ErrCodeInvalidInput, "无效的输入参数")
	ErrValidation   = NewError(ErrCodeValidation, "数据验证失败")
	ErrDependency   = NewError(ErrCodeDependency, "依赖服务错误")
	ErrDatabase     = NewError(ErrCodeDatabase, "数据库错误")
	ErrTimeout      = NewError(ErrCodeTimeout, "操作超时")
)

// IsErrorCode 判断错误链中是否存在指定错误码的 AppError
func IsErrorCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.code == code
	}
	return false
}

// GetErrorCode 获取错误码，非 AppError 视为内部错误
func GetErrorCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool   { return IsErrorCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool { return IsErrorCode(err, ErrCodeValidation) }
