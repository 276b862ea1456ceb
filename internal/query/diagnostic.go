package query

import (
	"errors"
	"fmt"
)

// DiagnosticKind classifies a soft failure. All kinds render to the same
// human-readable strings callers have always received; the typed kind lets
// code and tests distinguish "not found" from "query failed" without
// string parsing.
type DiagnosticKind int

const (
	// DiagnosticConfig means the envelope database or mail directory is
	// missing or misconfigured.
	DiagnosticConfig DiagnosticKind = iota

	// DiagnosticNotFound means an intermediate lookup produced no rows
	// and the workflow halted there.
	DiagnosticNotFound

	// DiagnosticQueryFailed means the database rejected a query or the
	// file could not be read.
	DiagnosticQueryFailed
)

// Diagnostic is a soft failure: a condition reported to the caller as an
// informational text result rather than a raised error. It still
// implements error so it can travel through ordinary return paths.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// AsDiagnostic unwraps a Diagnostic from an error chain.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

func configDiag(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: DiagnosticConfig, Message: fmt.Sprintf(format, args...)}
}

func notFoundDiag(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: DiagnosticNotFound, Message: fmt.Sprintf(format, args...)}
}

func queryFailedDiag(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: DiagnosticQueryFailed, Message: fmt.Sprintf(format, args...)}
}
