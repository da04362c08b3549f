package parser

import (
	"fmt"

	"relviz/internal/diag"
	"relviz/internal/source"
)

// SyntaxError is the all-or-nothing parse failure: the furthest point the
// ordered-choice parser reached, with the expectation that failed there.
type SyntaxError struct {
	Span source.Span
	Code diag.Code
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Span.Start, e.Msg)
}
