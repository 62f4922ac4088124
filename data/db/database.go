// Package db 提供仓储使用的数据库抽象
//
// 仓储只依赖 IDatabase，具体实现位于 basic 子包；
// 事务通过 context 传递，见 WithTx / Executor。
package db

import (
	"context"
	"database/sql"
)

// IDatabase 数据库接口
type IDatabase interface {
	Query(ctx context.Context, query string, args ...any) (IRows, error)
	QueryRow(ctx context.Context, query string, args ...any) IRow
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	Begin(ctx context.Context) (ITransaction, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (ITransaction, error)

	Ping(ctx context.Context) error
	Close() error
}

// IDialectNameProvider 可选接口：提供底层方言名称（如 "sqlite"、"postgres"）
type IDialectNameProvider interface {
	GetDialectName() string
}

// ITransaction 事务接口，事务本身也可作为 IDatabase 使用
type ITransaction interface {
	IDatabase

	Commit() error
	Rollback() error
}

// IRows 查询结果集
type IRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// IRow 单行结果
type IRow interface {
	Scan(dest ...any) error
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver   string // sqlite, postgres ...
	Database string // DSN

	// 连接池
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

type txKey struct{}

// WithTx 将事务绑定到 context
func WithTx(ctx context.Context, tx ITransaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext 取出 context 中绑定的事务
func TxFromContext(ctx context.Context) (ITransaction, bool) {
	tx, ok := ctx.Value(txKey{}).(ITransaction)
	return tx, ok && tx != nil
}

// Executor 返回当前应使用的执行者：context 中有事务时使用事务，否则使用 database
func Executor(ctx context.Context, database IDatabase) IDatabase {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return database
}
