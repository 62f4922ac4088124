package memory

import (
	"context"

	"ticketing/domain/repository"
)

// Transactor 内存仓储的事务信封
//
// 内存仓储的单个写入本身是原子的，这里只负责统一失败语义。
type Transactor struct{}

func NewTransactor() *Transactor { return &Transactor{} }

// Run 执行 fn，失败时包装为 TransactionError
func (t *Transactor) Run(ctx context.Context, op repository.TxOperation, kind string, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return repository.NewTransactionError(op, kind, err)
	}
	return nil
}

var _ repository.ITransactor = (*Transactor)(nil)
