// Package domain 定义领域对象的根接口。
package domain

// IObject 最基础的对象接口，所有实体的根接口。
type IObject[T comparable] interface {
	// GetID 返回对象的唯一标识
	GetID() T
}

// IAggregate 聚合根接口。
// 聚合根是写入的一致性边界，持有自身标识与校验状态。
type IAggregate[T comparable] interface {
	IObject[T]

	// EntityKind 返回聚合类型名，用于错误信息与日志
	EntityKind() string
}

// ICloneable 可复制接口。
// 内存仓储通过副本隔离存储内容与调用方持有的实例。
type ICloneable[E any] interface {
	Clone() E
}
