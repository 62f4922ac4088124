package repository

import (
	"cmp"
	"strings"
	"time"
)

// Comparator 字段比较函数，返回负数/0/正数
type Comparator[E any] func(a, b E) int

// SortSpec 默认排序规格
type SortSpec struct {
	Field     string
	Direction SortDirection
}

// ByString 字符串字段比较（按字节序）
func ByString[E any](get func(E) string) Comparator[E] {
	return func(a, b E) int { return strings.Compare(get(a), get(b)) }
}

// ByNumber 数值字段比较
func ByNumber[E any, N cmp.Ordered](get func(E) N) Comparator[E] {
	return func(a, b E) int { return cmp.Compare(get(a), get(b)) }
}

// ByTime 时间字段比较
func ByTime[E any](get func(E) time.Time) Comparator[E] {
	return func(a, b E) int { return get(a).Compare(get(b)) }
}

// ContainsFold 不区分大小写的子串匹配，只折叠 ASCII 字母，与 SQLite lower() 一致
func ContainsFold(s, substr string) bool {
	return strings.Contains(lowerASCII(s), lowerASCII(substr))
}

// EqualFold 不区分大小写的完全匹配，与 ContainsFold 使用相同的大小写折叠
func EqualFold(a, b string) bool {
	return lowerASCII(a) == lowerASCII(b)
}

// lowerASCII 将 A-Z 转为 a-z，其余字节原样保留
func lowerASCII(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return 'A' <= r && r <= 'Z' })
	if i < 0 {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
