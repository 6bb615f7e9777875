package creditmut

// FieldMap gives the 0-indexed positions of the columns in the
// semicolon-delimited statement export.
type FieldMap struct {
	Date        int
	Description int
	Credit      int
	Debit       int
}

// width is the minimum number of fields a line must carry.
func (m FieldMap) width() int {
	max := m.Date
	for _, i := range []int{m.Description, m.Credit, m.Debit} {
		if i > max {
			max = i
		}
	}
	return max + 1
}

var (
	// FieldMapValueDate matches the export variant that carries a
	// "Date de valeur" column, which the site currently serves.
	FieldMapValueDate = FieldMap{Date: 0, Description: 4, Credit: 2, Debit: 3}

	// FieldMapLegacy matches the export format used before the value-date
	// column was added.
	FieldMapLegacy = FieldMap{Date: 0, Description: 3, Credit: 1, Debit: 2}
)

// Profile collects every site-markup constant the scraper depends on:
// endpoint, form field names, the header signature locating the accounts
// table, link markers and the export column layout. When the bank changes
// its pages, this is the only place to touch.
type Profile struct {
	// LoginURL is the accounts-overview endpoint; it serves the login
	// form to unauthenticated sessions.
	LoginURL string

	// Credential field names of the login form.
	UserField     string
	PasswordField string

	// Header cell texts identifying the accounts table.
	HeaderAccount string
	HeaderDebit   string
	HeaderCredit  string

	// Hrefs pointing at a statement export contain this path fragment.
	// Rows whose link lacks it (mortgages, loans) have no export and are
	// skipped.
	StatementFragment string

	// The statement page offers several download formats; the link text
	// of the right one carries this marker.
	ExportMarker string

	// Fields is the column layout of the export.
	Fields FieldMap

	// EmptyPageRetries bounds the retry loop for the overview fetch. The
	// site is known to intermittently answer with a completely empty
	// body; this is not a general retry policy.
	EmptyPageRetries int
}

// DefaultProfile returns the constants for the site's current markup.
func DefaultProfile() Profile {
	return Profile{
		LoginURL:          "https://www.creditmutuel.fr/groupe/fr/index.html",
		UserField:         "_cm_user",
		PasswordField:     "_cm_pwd",
		HeaderAccount:     "Compte",
		HeaderDebit:       "Débit",
		HeaderCredit:      "Crédit",
		StatementFragment: "mouvements",
		ExportMarker:      "XP",
		Fields:            FieldMapValueDate,
		EmptyPageRetries:  13,
	}
}
