package query

import (
	"context"

	"github.com/envmail/envmail/internal/envelope"
)

// SearchMessages runs a free-text search over the messages table, matching
// the query against subject and sender, newest received first.
func (e *EnvelopeEngine) SearchMessages(ctx context.Context, query string, limit int) (string, error) {
	st, diag := e.openEnvelope()
	if diag != nil {
		return "", diag
	}
	defer st.Close()

	sel := envelope.Select{
		Table: "messages",
		Columns: []string{
			"ROWID", "subject", "sender",
			"datetime(date_received, 'unixepoch') AS date",
		},
		OrderBy: "date_received DESC",
		Limit:   clampLimit(limit),
	}
	if query != "" {
		sel.Where = append(sel.Where, envelope.TextMatch(query, "subject", "sender"))
	}

	rows, err := runSelect(ctx, st, sel)
	if err != nil {
		return "", queryFailedDiag("Database error: %v", err)
	}

	if len(rows) == 0 {
		return "No messages found", nil
	}

	var r report
	r.addf("Found %d messages:", len(rows))
	r.blank()
	for _, row := range rows {
		r.addf("ID: %s", fieldOr(row, "rowid", unknown))
		r.addf("Subject: %s", fieldOr(row, "subject", noSubject))
		r.addf("From: %s", fieldOr(row, "sender", unknown))
		r.addf("Date: %s", fieldOr(row, "date", unknown))
		r.separator()
	}
	return r.String(), nil
}
