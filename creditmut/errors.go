package creditmut

import "fmt"

// ParseError reports a statement-export line that does not carry enough
// fields for the configured field map. Empty amount fields are not a
// ParseError; they parse as zero.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("creditmut: statement line %d: %s", e.Line, e.Reason)
}
