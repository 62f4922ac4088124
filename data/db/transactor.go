package db

import (
	"context"

	"ticketing/domain/repository"
	"ticketing/logging"
)

// Transactor 基于 IDatabase 的事务信封
//
// Run 开启事务并通过 context 传给 fn，仓储通过 Executor 取得事务执行写入。
// context 中已存在事务时直接加入，不开启嵌套事务。
type Transactor struct {
	db     IDatabase
	logger logging.Logger
}

// NewTransactor 创建事务信封，logger 为 nil 时使用全局 Logger
func NewTransactor(database IDatabase, logger logging.Logger) *Transactor {
	if logger == nil {
		logger = logging.GetLogger().WithFields(logging.String("component", "db.transactor"))
	}
	return &Transactor{db: database, logger: logger}
}

// Run 执行事务：begin → fn → commit，任一步骤失败时回滚并返回 TransactionError
func (t *Transactor) Run(ctx context.Context, op repository.TxOperation, kind string, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return repository.NewTransactionError(op, kind, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			t.logger.Warn(ctx, "事务回滚失败",
				logging.String("op", string(op)),
				logging.String("kind", kind),
				logging.Error(rbErr))
		}
	}()

	if err = fn(WithTx(ctx, tx)); err != nil {
		t.logger.Debug(ctx, "事务中止",
			logging.String("op", string(op)),
			logging.String("kind", kind),
			logging.Error(err))
		return repository.NewTransactionError(op, kind, err)
	}

	// 提交失败时事务已结束，不再回滚
	committed = true
	if err = tx.Commit(); err != nil {
		return repository.NewTransactionError(op, kind, err)
	}
	return nil
}

var _ repository.ITransactor = (*Transactor)(nil)
