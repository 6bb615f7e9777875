package creditmut

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatementAsString(t *testing.T) {
	st := &Statement{
		date:        "31/12/03",
		description: "CARTE PAIEMENT",
		amount:      decimal.RequireFromString("-25.5"),
	}

	if got := st.AsString(""); got != "31/12/03\tCARTE PAIEMENT\t-25.5" {
		t.Errorf("default separator: got %q", got)
	}
	if got := st.AsString(","); got != "31/12/03,CARTE PAIEMENT,-25.5" {
		t.Errorf("comma separator: got %q", got)
	}
}

func TestStatementAsStringRoundTrip(t *testing.T) {
	st := &Statement{
		date:        "02/01/04",
		description: "VIREMENT SALAIRE",
		amount:      decimal.RequireFromString("1000"),
	}

	for _, sep := range []string{"\t", ",", ";", "|"} {
		parts := strings.Split(st.AsString(sep), sep)
		if len(parts) != 3 {
			t.Fatalf("separator %q: got %d parts", sep, len(parts))
		}
		if parts[0] != st.Date() || parts[1] != st.Description() || parts[2] != st.Amount().String() {
			t.Errorf("separator %q: round trip mismatch: %v", sep, parts)
		}
	}
}

func TestParseExport(t *testing.T) {
	body := "Date;Date de valeur;Crédit;Débit;Libellé\r\n" +
		"31/12/2003;31/12/2003;;25,50;CARTE PAIEMENT\r\n" +
		"02/01/2004;02/01/2004;1 000,00;;VIREMENT  SALAIRE\r\n"

	statements, err := parseExport(body, FieldMapValueDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}

	first := statements[0]
	if first.Date() != "31/12/03" {
		t.Errorf("date: got %q, want %q", first.Date(), "31/12/03")
	}
	if first.Description() != "CARTE PAIEMENT" {
		t.Errorf("description: got %q", first.Description())
	}
	if !first.Amount().Equal(decimal.RequireFromString("-25.5")) {
		t.Errorf("amount: got %s, want -25.5", first.Amount())
	}

	second := statements[1]
	if !second.Amount().Equal(decimal.RequireFromString("1000")) {
		t.Errorf("amount: got %s, want 1000", second.Amount())
	}
	if second.Description() != "VIREMENT SALAIRE" {
		t.Errorf("description not collapsed: %q", second.Description())
	}
}

func TestParseExportLegacyLayout(t *testing.T) {
	body := "Date;Crédit;Débit;Libellé\r\n" +
		"15/06/1999;;12,34;PRELEVEMENT EDF\r\n"

	statements, err := parseExport(body, FieldMapLegacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(statements))
	}
	st := statements[0]
	if st.Date() != "15/06/99" {
		t.Errorf("date: got %q", st.Date())
	}
	if st.Description() != "PRELEVEMENT EDF" {
		t.Errorf("description: got %q", st.Description())
	}
	if !st.Amount().Equal(decimal.RequireFromString("-12.34")) {
		t.Errorf("amount: got %s, want -12.34", st.Amount())
	}
}

func TestParseExportShortLine(t *testing.T) {
	body := "Date;Date de valeur;Crédit;Débit;Libellé\r\n" +
		"31/12/2003;;25,50\r\n"

	_, err := parseExport(body, FieldMapValueDate)
	if err == nil {
		t.Fatal("expected error for short line, got nil")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 2 {
		t.Errorf("line: got %d, want 2", perr.Line)
	}
}

func TestParseExportEmptyAmounts(t *testing.T) {
	// Both amount columns blank coerces to zero, not an error.
	body := "Date;Date de valeur;Crédit;Débit;Libellé\r\n" +
		"31/12/2003;31/12/2003;;;SOLDE INTERMEDIAIRE\r\n"

	statements, err := parseExport(body, FieldMapValueDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !statements[0].Amount().IsZero() {
		t.Errorf("amount: got %s, want 0", statements[0].Amount())
	}
}
