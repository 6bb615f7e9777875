package creditmut

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Trailing 3-letter currency code on a balance cell, e.g. "1 234,56EUR".
	currencySuffixPattern = regexp.MustCompile(`([A-Z]{3})\s*$`)

	// Leading account number: digit groups joined by single non-digit
	// separators, followed by the account label.
	accountCellPattern = regexp.MustCompile(`^(\d+(?:\D\d+)*)\s+(\D.*)$`)

	nonDigitPattern = regexp.MustCompile(`\D`)

	// Trailing 4-digit year; the first two digits are dropped.
	longYearPattern = regexp.MustCompile(`(\d\d)(\d\d)\s*$`)

	spaceRunPattern = regexp.MustCompile(`\s+`)
)

// collapse trims s and folds internal whitespace runs to single spaces.
func collapse(s string) string {
	return spaceRunPattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseAmount converts a French-formatted amount ("25,50", "1 234,56",
// "1'234,56") to a decimal: decimal comma becomes a point, space and
// apostrophe thousands separators are stripped. Empty or unparseable
// input yields zero. That coercion is deliberate: the export leaves one
// of the debit/credit columns blank on every line, and callers have
// always relied on blank meaning zero rather than an error. This is the
// single place where it happens.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// splitBalanceCell separates the trailing currency code from the numeric
// part of a balance cell: "1 234,56EUR" -> ("1 234,56", "EUR").
func splitBalanceCell(cell string) (amount, currency string) {
	cell = collapse(cell)
	m := currencySuffixPattern.FindStringSubmatchIndex(cell)
	if m == nil {
		return cell, ""
	}
	return strings.TrimSpace(cell[:m[2]]), cell[m[2]:m[3]]
}

// splitAccountCell splits a combined "number + label" cell such as
// "123456789 01 Compte Courant" into the account number ("123456789 01",
// separators normalized to spaces) and the label ("Compte Courant").
// ok is false when the cell has no numeric prefix; the caller then keeps
// the whole cell as the name.
func splitAccountCell(cell string) (accountNo, name string, ok bool) {
	m := accountCellPattern.FindStringSubmatch(cell)
	if m == nil {
		return "", cell, false
	}
	return nonDigitPattern.ReplaceAllString(m[1], " "), m[2], true
}

// normalizeDate rewrites a trailing 4-digit year to its 2-digit form:
// "31/12/2003" becomes "31/12/03". Dates already in 2-digit form pass
// through unchanged.
func normalizeDate(date string) string {
	return longYearPattern.ReplaceAllString(strings.TrimSpace(date), "$2")
}
