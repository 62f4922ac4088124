package ticket

import (
	"ticketing/validation"
)

const (
	FieldStatus       = "status"
	FieldPrice        = "price"
	FieldPurchaseDate = "purchaseDate"
)

// NewValidator 创建门票校验器，默认字段组为 {status, price, purchaseDate}
func NewValidator() *validation.RuleValidator[*Ticket] {
	statuses := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		statuses = append(statuses, string(s))
	}

	return validation.NewRuleValidator[*Ticket](FieldStatus, FieldPrice, FieldPurchaseDate).
		Field(FieldStatus,
			func(t *Ticket) error { return validation.CheckEnum(string(t.status), FieldStatus, statuses) },
		).
		Field(FieldPrice,
			func(t *Ticket) error { return validation.CheckMin(t.price, FieldPrice, 0) },
		).
		Field(FieldPurchaseDate,
			func(t *Ticket) error { return validation.CheckDate(t.purchaseDate, FieldPurchaseDate) },
		)
}
