package creditmut

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/creditmut-client/session"
)

// fetchStatements navigates the shared session to the account's
// statement page, follows the export-format link, and parses the body.
func (a *Account) fetchStatements() ([]*Statement, error) {
	if err := a.session.Get(a.statementLink); err != nil {
		return nil, fmt.Errorf("fetching statement page for %s: %w", a.name, err)
	}
	link, ok := a.session.FindLink(func(l session.Link) bool {
		return strings.Contains(l.Text, a.profile.ExportMarker)
	})
	if !ok {
		return nil, fmt.Errorf("creditmut: no %q export link on statement page for %s", a.profile.ExportMarker, a.name)
	}
	if err := a.session.Get(link.Href); err != nil {
		return nil, fmt.Errorf("fetching statement export for %s: %w", a.name, err)
	}
	return parseExport(a.session.Body(), a.profile.Fields)
}

// parseExport parses the CRLF-delimited, semicolon-separated export
// body. The first line is a column header and is discarded.
func parseExport(body string, fields FieldMap) ([]*Statement, error) {
	lines := strings.Split(body, "\r\n")
	var statements []*Statement
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		st, err := parseExportLine(line, fields, i+1)
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
	return statements, nil
}

// parseExportLine parses one export line through the field map. The
// credit column wins when non-empty, otherwise the debit column is taken
// and negated; an empty amount in the chosen column stays zero.
func parseExportLine(line string, fields FieldMap, lineNo int) (*Statement, error) {
	cols := strings.Split(line, ";")
	if len(cols) < fields.width() {
		return nil, &ParseError{
			Line:   lineNo,
			Text:   line,
			Reason: fmt.Sprintf("%d fields, need at least %d", len(cols), fields.width()),
		}
	}

	amount := ParseAmount(cols[fields.Credit])
	if strings.TrimSpace(cols[fields.Credit]) == "" {
		amount = ParseAmount(cols[fields.Debit]).Neg()
	}

	return &Statement{
		date:        normalizeDate(cols[fields.Date]),
		description: collapse(cols[fields.Description]),
		amount:      amount,
	}, nil
}
