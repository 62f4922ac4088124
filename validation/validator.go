package validation

// IValidator 实体校验器
//
// Validate 将 fields 指定字段（为空时使用校验器的默认字段组）的错误写入 n，
// 返回这些字段是否全部通过。校验本身不返回错误，调用方通过 n.HasErrors() 观察结果。
type IValidator[E any] interface {
	Validate(n *Notification, entity E, fields ...string) bool
}

// Rule 单条字段规则，返回非 nil 错误表示违反规则，错误文本即消息
type Rule[E any] func(entity E) error

// RuleValidator 基于字段分组规则的通用校验器
type RuleValidator[E any] struct {
	rules    map[string][]Rule[E]
	defaults []string
}

// NewRuleValidator 创建校验器，defaults 为未指定字段时的默认字段组
func NewRuleValidator[E any](defaults ...string) *RuleValidator[E] {
	return &RuleValidator[E]{
		rules:    make(map[string][]Rule[E]),
		defaults: append([]string(nil), defaults...),
	}
}

// Field 为字段注册规则，规则按注册顺序执行
func (v *RuleValidator[E]) Field(name string, rules ...Rule[E]) *RuleValidator[E] {
	v.rules[name] = append(v.rules[name], rules...)
	return v
}

// DefaultFields 返回默认字段组
func (v *RuleValidator[E]) DefaultFields() []string {
	return append([]string(nil), v.defaults...)
}

// Validate 实现 IValidator
//
// 未注册规则的字段被忽略；已有的其他字段错误不会被清除。
func (v *RuleValidator[E]) Validate(n *Notification, entity E, fields ...string) bool {
	if len(fields) == 0 {
		fields = v.defaults
	}
	valid := true
	for _, field := range fields {
		for _, rule := range v.rules[field] {
			if err := rule(entity); err != nil {
				n.AddError(field, err.Error())
				valid = false
			}
		}
	}
	return valid
}
