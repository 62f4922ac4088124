// Package sqlrepo 提供基于 SQL 数据库的活动/用户/门票仓储
//
// 每张表带有自增 seq 列记录插入顺序：FindAll 按 seq 输出，
// 排序时以 seq 升序作为次级键，使并列项保持插入顺序，与内存实现一致。
// 时间以定宽 UTC 文本存储（见 dbTime），零值存为 NULL。
package sqlrepo

import (
	"context"
	"fmt"

	core "ticketing/data/db"
)

// schema SQLite 建表语句
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT,
		location TEXT NOT NULL,
		price REAL NOT NULL,
		total_available_tickets INTEGER NOT NULL,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password TEXT NOT NULL,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		event_id TEXT NOT NULL,
		event_title TEXT NOT NULL,
		event_date TEXT,
		event_location TEXT NOT NULL,
		event_price REAL NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		purchase_date TEXT,
		price REAL NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_user_id ON tickets (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_event_id ON tickets (event_id)`,
}

// Migrate 创建仓储所需的表，可重复执行
func Migrate(ctx context.Context, database core.IDatabase) error {
	for _, stmt := range schema {
		if _, err := database.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}
