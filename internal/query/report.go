package query

import (
	"fmt"
	"strings"

	"github.com/envmail/envmail/internal/envelope"
)

// Placeholder strings for absent optional fields. The formatter never
// drops a field silently; downstream consumers rely on the positional
// structure of each record block.
const (
	noSubject = "(no subject)"
	unknown   = "(unknown)"
)

// report accumulates a deterministic line-oriented text block: a header,
// one block per record with field labels in fixed order, and "---"
// separators between records.
type report struct {
	lines []string
}

func (r *report) add(line string) {
	r.lines = append(r.lines, line)
}

func (r *report) addf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *report) blank() {
	r.lines = append(r.lines, "")
}

func (r *report) separator() {
	r.lines = append(r.lines, "---")
}

func (r *report) String() string {
	return strings.Join(r.lines, "\n")
}

// textOr renders a value, substituting placeholder for NULL or absent.
func textOr(v envelope.Value, ok bool, placeholder string) string {
	if !ok || v.IsNull() {
		return placeholder
	}
	return v.String()
}

// fieldOr looks a column up in a row and renders it with a placeholder.
func fieldOr(row envelope.Row, col, placeholder string) string {
	v, ok := row.Value(col)
	return textOr(v, ok, placeholder)
}
