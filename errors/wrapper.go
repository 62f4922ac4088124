package errors

import (
	"context"
	"fmt"
	"runtime"

	"ticketing/logging"
)

// Wrap 包装错误并附加调用位置，用于用例边界
func Wrap(ctx context.Context, err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := WrapError(err, code, msg).WithDetails(map[string]any{"location": caller(2)})
	logging.GetLogger().Debug(ctx, "error wrapped",
		logging.String("error_code", string(code)),
		logging.String("message", msg))
	return wrapped
}

// WrapWithLog 包装错误并立即记录告警
func WrapWithLog(ctx context.Context, err error, code ErrorCode, msg string, fields ...logging.Field) error {
	if err == nil {
		return nil
	}
	location := caller(2)
	all := append([]logging.Field{
		logging.Error(err),
		logging.String("error_code", string(code)),
		logging.String("location", location),
	}, fields...)
	logging.GetLogger().Warn(ctx, msg, all...)
	return WrapError(err, code, msg).WithDetails(map[string]any{"location": location})
}

// NormalizeAndLog 规范化错误，内部错误与依赖错误记录为 error 级别
func NormalizeAndLog(ctx context.Context, err error, fields ...logging.Field) error {
	normalized := Normalize(err)
	if normalized == nil {
		return nil
	}
	switch GetErrorCode(normalized) {
	case ErrCodeInternal, ErrCodeDependency, ErrCodeDatabase:
		all := append([]logging.Field{
			logging.Error(err),
			logging.String("error_code", string(GetErrorCode(normalized))),
		}, fields...)
		logging.GetLogger().Error(ctx, "request failed", all...)
	}
	return normalized
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
