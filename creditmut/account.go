package creditmut

import (
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/creditmut-client/session"
)

// Account is a read-only snapshot of one row of the accounts overview.
// It keeps a reference to the session it was scraped with so statements
// can be fetched later in the same authenticated state.
type Account struct {
	session *session.Session
	profile Profile
	logger  *log.Logger

	name          string
	accountNo     string
	balance       decimal.Decimal
	currency      string
	statementLink string

	statements []*Statement
	fetched    bool
}

// Name returns the human-readable account label.
func (a *Account) Name() string { return a.name }

// AccountNo returns the numeric account identifier, with any separator
// characters normalized to spaces. Empty when the overview cell did not
// match the number+label pattern.
func (a *Account) AccountNo() string { return a.accountNo }

// Balance returns the signed balance; debit balances are negative.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// Currency returns the 3-letter currency code from the balance cell.
func (a *Account) Currency() string { return a.currency }

// SortCode reports the account's sort code. The site has no sort-code
// concept, so the second return is always false; that is an absence, not
// an error.
func (a *Account) SortCode() (string, bool) { return "", false }

// StatementLink returns the session-relative href of the statement
// export. It is only valid for the lifetime of the login session.
func (a *Account) StatementLink() string { return a.statementLink }

// Statements fetches and parses the account's statement export, in the
// order the site publishes it. The result is computed once and cached;
// later calls return the same slice without touching the network.
func (a *Account) Statements() ([]*Statement, error) {
	if a.fetched {
		return a.statements, nil
	}
	statements, err := a.fetchStatements()
	if err != nil {
		return nil, err
	}
	a.statements = statements
	a.fetched = true
	return statements, nil
}
