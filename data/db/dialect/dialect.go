// Package dialect 描述不同数据库在 SQL 语法上的差异
package dialect

import (
	"strconv"
	"strings"

	core "ticketing/data/db"
)

// Name 标准化的方言名称
type Name string

const (
	NameMySQL    Name = "mysql"
	NameSQLite   Name = "sqlite"
	NamePostgres Name = "postgres"
	NameUnknown  Name = ""
)

// Dialect 当前数据库的方言能力
//
// 只抽象仓储实际用到的差异：
//   - 标识符引号与占位符形式；
//   - 不区分大小写的子串匹配表达式；
//   - 唯一键冲突识别。
type Dialect struct {
	name Name
}

// New 根据驱动名构造方言（大小写不敏感）
func New(name string) Dialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql":
		return Dialect{name: NameMySQL}
	case "sqlite", "sqlite3":
		return Dialect{name: NameSQLite}
	case "postgres", "postgresql", "pgx":
		return Dialect{name: NamePostgres}
	default:
		return Dialect{name: NameUnknown}
	}
}

// FromDatabase 从实现了 IDialectNameProvider 的数据库推断方言，否则返回 Unknown
func FromDatabase(database core.IDatabase) Dialect {
	if p, ok := database.(core.IDialectNameProvider); ok {
		return New(p.GetDialectName())
	}
	return Dialect{name: NameUnknown}
}

func (d Dialect) Name() Name { return d.name }

// QuoteIdentifier 按方言为标识符加引号，带点形式逐段处理；未知方言原样返回
func (d Dialect) QuoteIdentifier(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		switch d.name {
		case NameMySQL:
			parts[i] = "`" + p + "`"
		case NameSQLite, NamePostgres:
			parts[i] = `"` + p + `"`
		}
	}
	return strings.Join(parts, ".")
}

// Rebind 将 ? 占位符转换为方言形式，目前只有 Postgres 需要转换为 $n
//
// 简单字符扫描，不识别字符串字面量中的 ?，字面量请改用参数传入。
func (d Dialect) Rebind(query string) string {
	if d.name != NamePostgres || query == "" {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// ContainsFold 返回“列包含参数子串（不区分大小写）”的条件表达式，含一个 ? 占位符
//
// 使用 lower() 而非 LIKE，避免参数中的 % 与 _ 被当作通配符。
// SQLite 的 lower() 只折叠 ASCII 字母，与 repository.ContainsFold 一致。
func (d Dialect) ContainsFold(column string) string {
	col := d.QuoteIdentifier(column)
	switch d.name {
	case NamePostgres:
		return "position(lower(?) in lower(" + col + ")) > 0"
	case NameMySQL:
		return "locate(lower(?), lower(" + col + ")) > 0"
	default:
		return "instr(lower(" + col + "), lower(?)) > 0"
	}
}

// EqualFold 返回“列等于参数（不区分大小写）”的条件表达式，含一个 ? 占位符
func (d Dialect) EqualFold(column string) string {
	return "lower(" + d.QuoteIdentifier(column) + ") = lower(?)"
}

// IsUniqueViolation 根据错误消息判断是否为唯一键/主键冲突
//
// 错误文本随驱动版本变化，只匹配各库稳定的关键字：
//   - MySQL: "Duplicate entry"
//   - SQLite: "UNIQUE constraint failed"
//   - Postgres: "duplicate key value"
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch d.name {
	case NameMySQL:
		return strings.Contains(msg, "duplicate entry")
	case NameSQLite:
		return strings.Contains(msg, "unique constraint failed")
	case NamePostgres:
		return strings.Contains(msg, "duplicate key")
	default:
		return strings.Contains(msg, "duplicate key") ||
			strings.Contains(msg, "unique constraint")
	}
}
