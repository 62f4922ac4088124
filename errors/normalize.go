package errors

import (
	"context"
	stdErrors "errors"

	"ticketing/domain/entity"
	"ticketing/domain/identity"
	"ticketing/domain/repository"
	"ticketing/pricing"
)

// Normalize 将领域层/基础设施层的错误规范化为 AppError
//
// 已是 AppError 的错误原样返回；未识别的错误归为 INTERNAL_ERROR。
// 字段级错误（校验失败、存储数据损坏）放入 details["fields"]。
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	// 超时优先：价格解析或事务因调用方截止时间失败时按超时处理
	if stdErrors.Is(err, context.DeadlineExceeded) {
		return WrapError(err, ErrCodeTimeout, "操作超时")
	}
	if stdErrors.Is(err, context.Canceled) {
		return WrapError(err, ErrCodeCanceled, "操作已取消")
	}

	var validationErr *entity.EntityValidationError
	if stdErrors.As(err, &validationErr) {
		return WrapError(err, ErrCodeValidation, "数据验证失败").
			WithDetails(map[string]any{"fields": validationErr.Fields()})
	}

	var notFound *repository.NotFoundError
	if stdErrors.As(err, &notFound) {
		return WrapError(err, ErrCodeNotFound, "实体未找到").
			WithDetails(map[string]any{"kind": notFound.Kind, "id": notFound.EntityID})
	}

	var exists *repository.AlreadyExistsError
	if stdErrors.As(err, &exists) {
		return WrapError(err, ErrCodeConflict, "实体已存在").
			WithDetails(map[string]any{"kind": exists.Kind, "id": exists.EntityID})
	}

	var invalidID *identity.InvalidIdentifierError
	if stdErrors.As(err, &invalidID) {
		return WrapError(err, ErrCodeInvalidInput, "无效的标识")
	}

	var priceErr *pricing.PriceResolutionError
	if stdErrors.As(err, &priceErr) {
		return WrapError(err, ErrCodeDependency, "价格服务不可用").
			WithDetails(map[string]any{"id": priceErr.EntityID})
	}

	var loadErr *entity.LoadEntityError
	if stdErrors.As(err, &loadErr) {
		return WrapError(err, ErrCodeDatabase, "存储数据无效").
			WithDetails(map[string]any{"kind": loadErr.Kind, "fields": loadErr.Fields()})
	}

	var txErr *repository.TransactionError
	if stdErrors.As(err, &txErr) {
		return WrapError(err, ErrCodeDatabase, "事务执行失败").
			WithDetails(map[string]any{"operation": string(txErr.Op), "kind": txErr.Kind})
	}

	return WrapError(err, ErrCodeInternal, "内部服务器错误")
}
