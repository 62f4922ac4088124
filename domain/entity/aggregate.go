// Package entity 提供聚合根基础实现与实体校验错误
package entity

import (
	"ticketing/validation"
)

// AggregateRoot 聚合根基础字段（用于嵌入）
//
// 持有聚合自身的错误收集器：构造时为空，由校验填充，之后不会被重置。
// 具体聚合负责在变更方法中只重新校验受影响的字段。
//
// 示例:
//
//	type Event struct {
//	    entity.AggregateRoot
//	    Title string
//	}
type AggregateRoot struct {
	notification *validation.Notification
}

// Notification 返回聚合的错误收集器
func (a *AggregateRoot) Notification() *validation.Notification {
	if a.notification == nil {
		a.notification = validation.NewNotification()
	}
	return a.notification
}

// HasErrors 聚合当前是否存在校验错误
func (a *AggregateRoot) HasErrors() bool {
	return a.notification != nil && a.notification.HasErrors()
}

// CloneRoot 复制聚合根字段（含错误收集器的独立副本）
func (a *AggregateRoot) CloneRoot() AggregateRoot {
	cloned := AggregateRoot{}
	if a.notification != nil {
		cloned.Notification().Copy(a.notification)
	}
	return cloned
}

// EnsureValid 将收集到的错误转换为 EntityValidationError
//
// 用例层在写入前调用，聚合自身的校验从不返回错误。
func (a *AggregateRoot) EnsureValid() error {
	if !a.HasErrors() {
		return nil
	}
	return NewEntityValidationError(a.notification)
}
