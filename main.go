package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/creditmut-client/creditmut"
	"github.com/insightdelivered/creditmut-client/internal/api"
	"github.com/insightdelivered/creditmut-client/internal/writer"
	"github.com/insightdelivered/creditmut-client/session"
)

const version = "1.0.0"

func main() {
	// CLI flags
	userFlag := flag.String("user", "", "Home-banking username")
	passFlag := flag.String("pass", os.Getenv("CREDITMUT_PASSWORD"), "Home-banking password (defaults to $CREDITMUT_PASSWORD)")
	statementsFlag := flag.Bool("statements", false, "Also download and print each account's statements")
	separatorFlag := flag.String("separator", "\t", "Separator for printed statement lines")
	outputFlag := flag.String("output", "", "Write statements to CSV files with this path prefix (implies -statements)")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV output")
	legacyFlag := flag.Bool("legacy-export", false, "Parse the pre-value-date export column layout")
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	serveFlag := flag.Bool("serve", false, "Run the JSON API server instead of scraping once")
	addrFlag := flag.String("addr", ":8080", "Address for -serve")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Crédit Mutuel balance and statement fetcher
by Insight Delivered (QEA AutoLens)

Logs into the Crédit Mutuel home-banking site, lists accounts with
their balances, and optionally downloads each account's statement
export as structured transactions.

Usage:
  creditmut-client [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # List accounts and balances
  CREDITMUT_PASSWORD=secret creditmut-client --user=123456789

  # Print statements, one tab-separated line per operation
  creditmut-client --user=123456789 --pass=secret --statements

  # Write one CSV file per account
  creditmut-client --user=123456789 --statements --output=statements

  # Run the JSON API
  creditmut-client --serve --addr=:8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("creditmut-client v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		app := fiber.New()
		h := &api.Handler{}
		h.Register(app)
		if err := app.Listen(*addrFlag); err != nil {
			fatalf("Server error: %v\n", err)
		}
		return
	}

	if *userFlag == "" || *passFlag == "" {
		flag.Usage()
		fatalf("\nBoth --user and a password are required.\n")
	}

	profile := creditmut.DefaultProfile()
	if *legacyFlag {
		profile.Fields = creditmut.FieldMapLegacy
	}
	sess := session.New(session.WithTimeout(*timeoutFlag))

	accounts, err := creditmut.CheckBalance(*userFlag, *passFlag,
		creditmut.WithProfile(profile),
		creditmut.WithSession(sess),
	)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	fmt.Printf("Found %d account(s)\n", len(accounts))
	for _, acct := range accounts {
		fmt.Printf("  %-16s %-32s %12s %s\n",
			acct.AccountNo(), acct.Name(), acct.Balance().StringFixed(2), acct.Currency())
	}

	if !*statementsFlag && *outputFlag == "" {
		return
	}

	for _, acct := range accounts {
		statements, err := acct.Statements()
		if err != nil {
			fatalf("Error fetching statements for %s: %v\n", acct.Name(), err)
		}

		fmt.Printf("\n%s: %d operation(s)\n", acct.Name(), len(statements))
		for _, st := range statements {
			fmt.Println(st.AsString(*separatorFlag))
		}

		if *outputFlag != "" {
			path := outputPath(*outputFlag, acct.AccountNo(), acct.Name())
			w := &writer.CSVWriter{IncludeHeader: *headerFlag}
			meta := writer.Meta{
				Name:      acct.Name(),
				AccountNo: acct.AccountNo(),
				Currency:  acct.Currency(),
				Balance:   acct.Balance(),
			}
			records := make([]writer.Record, 0, len(statements))
			for _, st := range statements {
				records = append(records, writer.Record{
					Date:        st.Date(),
					Description: st.Description(),
					Amount:      st.Amount(),
				})
			}
			if err := w.WriteToFile(path, meta, records); err != nil {
				fatalf("CSV write failed: %v\n", err)
			}
			fmt.Printf("  Output: %s\n", path)
		}
	}
}

var unsafePathPattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// outputPath derives a per-account CSV path from the -output prefix.
func outputPath(prefix, accountNo, name string) string {
	id := accountNo
	if id == "" {
		id = name
	}
	id = unsafePathPattern.ReplaceAllString(id, "-")
	return fmt.Sprintf("%s-%s.csv", strings.TrimSuffix(prefix, ".csv"), id)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
