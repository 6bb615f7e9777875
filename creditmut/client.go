// Package creditmut scrapes the Crédit Mutuel home-banking site: it logs
// in with a scripted session, lists accounts with their balances from the
// overview table, and downloads each account's statement export.
//
// The whole flow is strictly sequential. The session holds the login
// state and the server-side "current page", so the returned accounts
// share it and must not be used concurrently.
package creditmut

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/creditmut-client/session"
)

// ErrMissingCredentials is returned before any network I/O when either
// credential field is empty.
var ErrMissingCredentials = errors.New("creditmut: username and password are both required")

// Client drives the scraping flow against one site profile.
type Client struct {
	session *session.Session
	profile Profile
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSession supplies the browser session to scrape with. Without it a
// fresh session with default timeout and user agent is created.
func WithSession(s *session.Session) Option {
	return func(c *Client) { c.session = s }
}

// WithProfile overrides the site-markup constants, e.g. to select the
// legacy export field layout or to point tests at a stub site.
func WithProfile(p Profile) Option {
	return func(c *Client) { c.profile = p }
}

// WithLogger sets the logger used for parse-anomaly warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client with the default profile.
func NewClient(opts ...Option) *Client {
	c := &Client{
		profile: DefaultProfile(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = session.New()
	}
	return c
}

// CheckBalance logs into the bank with the given credentials and returns
// one Account per supported row of the accounts-overview table, in row
// order. It is the package entry point.
func CheckBalance(username, password string, opts ...Option) ([]*Account, error) {
	return NewClient(opts...).CheckBalance(username, password)
}

// CheckBalance implements the login + account-listing flow on a Client.
func (c *Client) CheckBalance(username, password string) ([]*Account, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if err := c.fetchOverview(); err != nil {
		return nil, err
	}
	if err := c.session.SubmitForm(0, map[string]string{
		c.profile.UserField:     username,
		c.profile.PasswordField: password,
	}); err != nil {
		return nil, fmt.Errorf("submitting login form: %w", err)
	}
	return c.listAccounts()
}

// fetchOverview loads the overview endpoint, retrying the bounded number
// of times the site is known to answer with a completely empty body.
func (c *Client) fetchOverview() error {
	retries := c.profile.EmptyPageRetries
	if retries < 1 {
		retries = 1
	}
	for attempt := 1; ; attempt++ {
		if err := c.session.Get(c.profile.LoginURL); err != nil {
			return fmt.Errorf("fetching overview page: %w", err)
		}
		if len(c.session.Body()) > 0 {
			return nil
		}
		if attempt >= retries {
			return fmt.Errorf("creditmut: %s returned an empty page %d times", c.profile.LoginURL, attempt)
		}
		c.logger.Debug("empty overview page, retrying", "attempt", attempt)
	}
}

// listAccounts extracts one Account per qualifying row of the balance
// table on the current page.
func (c *Client) listAccounts() ([]*Account, error) {
	table, ok := c.findAccountTable()
	if !ok {
		return nil, errors.New("creditmut: accounts table not found after login")
	}

	var accounts []*Account
	rows := table.Find("tr")
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		nameCell := collapse(cells.Eq(0).Text())
		debitCell := collapse(cells.Eq(1).Text())
		creditCell := collapse(cells.Eq(2).Text())

		link, found := c.session.FindLink(func(l session.Link) bool {
			return collapse(l.Text) == nameCell
		})
		if !found || !strings.Contains(link.Href, c.profile.StatementFragment) {
			// No statement export for this row (mortgages, loans):
			// unsupported account type, dropped on purpose.
			return
		}

		accountNo, name, split := splitAccountCell(nameCell)
		if !split {
			c.logger.Warn("account cell did not match number+label pattern", "cell", nameCell)
		}

		var balance decimal.Decimal
		var currency string
		if debitCell != "" {
			raw, ccy := splitBalanceCell(debitCell)
			balance, currency = ParseAmount(raw).Neg(), ccy
		} else {
			raw, ccy := splitBalanceCell(creditCell)
			balance, currency = ParseAmount(raw), ccy
		}

		accounts = append(accounts, &Account{
			session:       c.session,
			profile:       c.profile,
			logger:        c.logger,
			name:          name,
			accountNo:     accountNo,
			balance:       balance,
			currency:      currency,
			statementLink: link.Href,
		})
	})
	return accounts, nil
}

// findAccountTable locates the table whose first row carries the
// account/debit/credit header signature.
func (c *Client) findAccountTable() (*goquery.Selection, bool) {
	doc := c.session.Document()
	if doc == nil {
		return nil, false
	}
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		cells := t.Find("tr").First().Find("th, td")
		if cells.Length() < 3 {
			return true
		}
		if collapse(cells.Eq(0).Text()) == c.profile.HeaderAccount &&
			collapse(cells.Eq(1).Text()) == c.profile.HeaderDebit &&
			collapse(cells.Eq(2).Text()) == c.profile.HeaderCredit {
			found = t
			return false
		}
		return true
	})
	return found, found != nil
}
