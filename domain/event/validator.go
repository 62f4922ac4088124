package event

import (
	"ticketing/validation"
)

// 字段名
const (
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldDate                  = "date"
	FieldLocation              = "location"
	FieldPrice                 = "price"
	FieldTotalAvailableTickets = "totalAvailableTickets"
)

// NewValidator 创建活动校验器
//
// 默认字段组为 {title, date, location}，price 与 totalAvailableTickets 只在显式指定时校验。
func NewValidator() *validation.RuleValidator[*Event] {
	return validation.NewRuleValidator[*Event](FieldTitle, FieldDate, FieldLocation).
		Field(FieldTitle,
			func(e *Event) error { return validation.CheckRequired(e.title, FieldTitle) },
			func(e *Event) error { return validation.CheckMaxLength(e.title, FieldTitle, 255) },
		).
		Field(FieldDescription,
			func(e *Event) error { return validation.CheckMaxLength(e.description, FieldDescription, 1000) },
		).
		Field(FieldDate,
			func(e *Event) error { return validation.CheckDate(e.date, FieldDate) },
		).
		Field(FieldLocation,
			func(e *Event) error { return validation.CheckRequired(e.location, FieldLocation) },
			func(e *Event) error { return validation.CheckMaxLength(e.location, FieldLocation, 255) },
		).
		Field(FieldPrice,
			func(e *Event) error { return validation.CheckMin(e.price, FieldPrice, 0) },
		).
		Field(FieldTotalAvailableTickets,
			func(e *Event) error {
				return validation.CheckMin(float64(e.totalAvailableTickets), FieldTotalAvailableTickets, 0)
			},
		)
}
