package repository

import (
	"context"
	"fmt"
)

// TxOperation 事务中执行的写入意图
type TxOperation string

const (
	TxCreate TxOperation = "create"
	TxUpdate TxOperation = "update"
	TxDelete TxOperation = "delete"
)

// ITransactor 写入事务信封
//
// 语义：begin → fn（单个逻辑变更）→ commit；fn 或 commit 失败时显式回滚，
// 会话在任何退出路径上都会释放。不做自动重试，失败以 TransactionError 返回，
// 由调用方决定是否重试。
//
// 使用模式：
//
//	err := tx.Run(ctx, repository.TxCreate, "Event", func(ctx context.Context) error {
//	    return repo.Insert(ctx, evt)
//	})
type ITransactor interface {
	Run(ctx context.Context, op TxOperation, kind string, fn func(ctx context.Context) error) error
}

// TransactionError 事务执行失败
type TransactionError struct {
	Op    TxOperation
	Kind  string
	Cause error
}

// NewTransactionError 创建事务错误
func NewTransactionError(op TxOperation, kind string, cause error) *TransactionError {
	return &TransactionError{Op: op, Kind: kind, Cause: cause}
}

func (e *TransactionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("failed to %s %s", e.Op, e.Kind)
}

func (e *TransactionError) Unwrap() error { return e.Cause }

// Code 返回错误码
func (e *TransactionError) Code() string { return CodeTransaction }
