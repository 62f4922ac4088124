package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CheckRequired 验证必填字符串
func CheckRequired(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s should not be empty", field)
	}
	return nil
}

// CheckMaxLength 验证字符串最大长度（按字符计）
func CheckMaxLength(value, field string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%s must be shorter than or equal to %d characters", field, max)
	}
	return nil
}

// CheckLength 验证字符串长度区间，max 为 0 表示无上限
func CheckLength(value, field string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if length < min || (max > 0 && length > max) {
		return fmt.Errorf("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

// CheckEmail 验证邮箱格式
func CheckEmail(value, field string) error {
	if !emailRegex.MatchString(value) {
		return fmt.Errorf("%s must be a valid email address", field)
	}
	return nil
}

// CheckMin 验证数值下限
func CheckMin(value float64, field string, min float64) error {
	if value < min {
		return fmt.Errorf("%s must not be less than %v", field, min)
	}
	return nil
}

// CheckEnum 验证枚举值
func CheckEnum(value, field string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of the following values: %s", field, strings.Join(valid, ", "))
}

// CheckDate 验证时间已设置且年份在 1 至 9999 之间
func CheckDate(value time.Time, field string) error {
	if y := value.UTC().Year(); value.IsZero() || y < 1 || y > 9999 {
		return fmt.Errorf("%s must be a valid date", field)
	}
	return nil
}
