package creditmut

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Statement is one line of an account's statement export. Statements are
// immutable and owned by their Account; callers do not construct them.
type Statement struct {
	date        string
	description string
	amount      decimal.Decimal
}

// Date returns the operation date in DD/MM/YY form.
func (s *Statement) Date() string { return s.date }

// Description returns the operation label.
func (s *Statement) Description() string { return s.description }

// Amount returns the signed amount; debits are negative.
func (s *Statement) Amount() decimal.Decimal { return s.amount }

// AsString joins date, description and amount with sep, or with a tab
// when sep is empty.
func (s *Statement) AsString(sep string) string {
	if sep == "" {
		sep = "\t"
	}
	return strings.Join([]string{s.date, s.description, s.amount.String()}, sep)
}
