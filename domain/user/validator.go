package user

import (
	"ticketing/validation"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// NewValidator 创建用户校验器，默认字段组为 {name, email, password}
func NewValidator() *validation.RuleValidator[*User] {
	return validation.NewRuleValidator[*User](FieldName, FieldEmail, FieldPassword).
		Field(FieldName,
			func(u *User) error { return validation.CheckLength(u.name, FieldName, 1, 100) },
		).
		Field(FieldEmail,
			func(u *User) error { return validation.CheckEmail(u.email, FieldEmail) },
		).
		Field(FieldPassword,
			func(u *User) error { return validation.CheckLength(u.password, FieldPassword, 6, 100) },
		)
}
