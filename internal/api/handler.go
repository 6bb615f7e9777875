package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/creditmut-client/creditmut"
)

const version = "1.0.0"

// AccountsRequest is the JSON body of POST /api/accounts.
type AccountsRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	IncludeStatements bool   `json:"includeStatements"`
}

// StatementJSON is one statement line in the JSON response.
type StatementJSON struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// AccountJSON is one account in the JSON response.
type AccountJSON struct {
	Name       string          `json:"name"`
	AccountNo  string          `json:"accountNo"`
	Balance    decimal.Decimal `json:"balance"`
	Currency   string          `json:"currency"`
	SortCode   *string         `json:"sortCode"` // always null for this bank
	Statements []StatementJSON `json:"statements,omitempty"`
}

// AccountsResponse is the JSON response from /api/accounts.
type AccountsResponse struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Accounts []AccountJSON `json:"accounts"`
	Count    int           `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	// Options are passed through to creditmut.CheckBalance. Tests use
	// them to point the scraper at a stub site.
	Options []creditmut.Option
}

// Register sets up the HTTP routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/accounts", h.HandleAccounts)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleAccounts runs the scraping flow with the posted credentials and
// returns the accounts (and optionally their statements) as JSON. Each
// request gets its own session; the credentials are used once and never
// stored.
func (h *Handler) HandleAccounts(c *fiber.Ctx) error {
	var req AccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Username == "" || req.Password == "" {
		return writeError(c, fiber.StatusBadRequest, "username and password are required")
	}

	accounts, err := creditmut.CheckBalance(req.Username, req.Password, h.Options...)
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, creditmut.ErrMissingCredentials) {
			status = fiber.StatusBadRequest
		}
		return writeError(c, status, err.Error())
	}

	out := make([]AccountJSON, 0, len(accounts))
	for _, acct := range accounts {
		aj := AccountJSON{
			Name:      acct.Name(),
			AccountNo: acct.AccountNo(),
			Balance:   acct.Balance(),
			Currency:  acct.Currency(),
		}
		if req.IncludeStatements {
			statements, err := acct.Statements()
			if err != nil {
				return writeError(c, fiber.StatusBadGateway,
					fmt.Sprintf("statements for %s: %v", acct.Name(), err))
			}
			for _, st := range statements {
				aj.Statements = append(aj.Statements, StatementJSON{
					Date:        st.Date(),
					Description: st.Description(),
					Amount:      st.Amount(),
				})
			}
		}
		out = append(out, aj)
	}

	return c.JSON(AccountsResponse{
		Success:  true,
		Accounts: out,
		Count:    len(out),
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AccountsResponse{
		Success:  false,
		Error:    msg,
		Accounts: []AccountJSON{},
	})
}
