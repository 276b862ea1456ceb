package envelope

import (
	"fmt"
	"strings"
)

// markerColumns are the column names whose presence suggests a table holds
// message data. A table with none of them is excluded from blind search.
var markerColumns = []string{"subject", "sender", "date_received", "date_sent", "message_id"}

// recipientColumns is the preference order for a recipient-like column.
var recipientColumns = []string{"recipients", "to_recipients"}

// displayDateColumns is the preference order for the human-readable date.
var displayDateColumns = []string{"date_received", "date_sent"}

// Capabilities records what a table's live column set supports. It is
// computed once per table per call and drives all query construction, so
// no SQL is ever generated against a column that is not actually present.
type Capabilities struct {
	// HasSubject and HasSender together mark a table as message-shaped.
	HasSubject bool
	HasSender  bool

	// DateColumn is the column date filters apply to: the first column
	// whose name contains "date" (case-insensitive), in catalog order.
	// Empty means date filters are not applied to this table.
	DateColumn string

	// RecipientColumn is the preferred recipient-like column, if any.
	RecipientColumn string

	// DisplayDateColumn is the column rendered as a readable date,
	// preferring date_received over date_sent. Empty if neither exists.
	DisplayDateColumn string
}

// HasMarker reports whether any marker column is present.
func HasMarker(cols []Column) bool {
	for _, c := range cols {
		for _, m := range markerColumns {
			if c.Name == m {
				return true
			}
		}
	}
	return false
}

// MatchColumns computes a table's capabilities from its live column list.
func MatchColumns(cols []Column) Capabilities {
	names := make(map[string]bool, len(cols))
	var caps Capabilities

	for _, c := range cols {
		names[c.Name] = true
		if caps.DateColumn == "" && strings.Contains(strings.ToLower(c.Name), "date") {
			caps.DateColumn = c.Name
		}
	}

	caps.HasSubject = names["subject"]
	caps.HasSender = names["sender"]

	for _, c := range recipientColumns {
		if names[c] {
			caps.RecipientColumn = c
			break
		}
	}
	for _, c := range displayDateColumns {
		if names[c] {
			caps.DisplayDateColumn = c
			break
		}
	}

	return caps
}

// MessageShaped reports whether the table looks like a message table:
// both a subject and a sender column are present.
func (c Capabilities) MessageShaped() bool {
	return c.HasSubject && c.HasSender
}

// SelectColumns returns the explicit select list for a message-shaped
// table: ROWID, the present identity columns, and the display date
// rendered via datetime(). Message-shaped tables are never queried with
// SELECT *.
func (c Capabilities) SelectColumns() []string {
	cols := []string{"ROWID"}
	if c.HasSubject {
		cols = append(cols, "subject")
	}
	if c.HasSender {
		cols = append(cols, "sender")
	}
	if c.RecipientColumn != "" {
		cols = append(cols, c.RecipientColumn)
	}
	if c.DisplayDateColumn != "" {
		cols = append(cols, fmt.Sprintf(
			"datetime(%s, 'unixepoch') AS %s_readable",
			c.DisplayDateColumn, c.DisplayDateColumn))
	}
	return cols
}
