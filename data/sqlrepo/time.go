package sqlrepo

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeLayout 定宽 UTC 文本，字典序与时间先后一致
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// 可存储的时间范围
var (
	minTime = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// dbTime 时间列的存取类型：零值为 NULL，其余为 timeLayout 文本
//
// 只支持 0001 至 9999 年，超出范围写入时报错。
type dbTime time.Time

// Value 实现 driver.Valuer
func (t dbTime) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	tt = tt.UTC()
	if y := tt.Year(); y < 1 || y > 9999 {
		return nil, fmt.Errorf("time %s out of storable range", tt.Format(time.RFC3339Nano))
	}
	return tt.Format(timeLayout), nil
}

// Scan 实现 sql.Scanner
func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = dbTime{}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case time.Time:
		*t = dbTime(v.UTC())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
}

func (t *dbTime) parse(s string) error {
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return err
	}
	*t = dbTime(parsed)
	return nil
}

// Time 返回 time.Time
func (t dbTime) Time() time.Time { return time.Time(t) }
