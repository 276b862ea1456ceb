package query

import (
	"context"

	"github.com/envmail/envmail/internal/envelope"
)

// SearchAllTables performs a blind search across every table that
// plausibly holds message data. Each table's columns are discovered live;
// tables missing all marker columns are skipped, message-shaped tables get
// a real filtered query, and unknown-shaped tables get a capped sample for
// diagnostic display only. Per-table failures are reported inline and
// never abort the walk.
func (e *EnvelopeEngine) SearchAllTables(ctx context.Context, dateFilter string, limit int) (string, error) {
	st, diag := e.openEnvelope()
	if diag != nil {
		return "", diag
	}
	defer st.Close()

	var r report
	if dateFilter != "" {
		r.addf("Searching all tables for emails on %s", dateFilter)
	} else {
		r.add("Searching all tables for emails")
	}
	r.blank()

	tables, err := st.Tables(ctx)
	if err != nil {
		return "", queryFailedDiag("Database search error: %v", err)
	}

	for _, table := range tables {
		cols, err := st.Describe(ctx, table)
		if err != nil {
			r.addf("Error searching %s: %v", table, err)
			r.blank()
			continue
		}

		// Skip tables that clearly don't contain email data.
		if !envelope.HasMarker(cols) {
			continue
		}

		r.addf("=== Searching table: %s ===", table)

		caps := envelope.MatchColumns(cols)
		if caps.MessageShaped() {
			e.searchMessageTable(ctx, st, &r, table, caps, dateFilter, limit)
		} else {
			e.sampleUnknownTable(ctx, st, &r, table)
		}
		r.blank()
	}

	return r.String(), nil
}

// searchMessageTable queries one message-shaped table with the discovered
// column set and renders the matching rows.
func (e *EnvelopeEngine) searchMessageTable(ctx context.Context, st *envelope.Store, r *report, table string, caps envelope.Capabilities, dateFilter string, limit int) {
	sel := envelope.Select{
		Table:   table,
		Columns: caps.SelectColumns(),
		OrderBy: "ROWID DESC",
		Limit:   clampLimit(limit),
	}
	if dateFilter != "" && caps.DateColumn != "" {
		sel.Where = append(sel.Where, envelope.DateRange(caps.DateColumn, dateFilter))
	}

	rows, err := runSelect(ctx, st, sel)
	if err != nil {
		r.addf("Error searching %s: %v", table, err)
		return
	}
	if len(rows) == 0 {
		r.add("No matching messages found")
		return
	}

	r.addf("Found %d messages:", len(rows))
	for _, row := range rows {
		r.addf("  ID: %s", fieldOr(row, "rowid", unknown))
		if caps.HasSubject {
			r.addf("  Subject: %s", fieldOr(row, "subject", noSubject))
		}
		if caps.HasSender {
			r.addf("  From: %s", fieldOr(row, "sender", unknown))
		}
		if caps.RecipientColumn != "" {
			r.addf("  To: %s", fieldOr(row, caps.RecipientColumn, unknown))
		}
		if caps.DisplayDateColumn != "" {
			r.addf("  Date: %s", fieldOr(row, caps.DisplayDateColumn+"_readable", unknown))
		}
		r.add("  ---")
	}
}

// sampleUnknownTable renders a capped unfiltered sample of a table that
// carries marker columns but is not message-shaped. Predicates are never
// applied here; the output is diagnostic only.
func (e *EnvelopeEngine) sampleUnknownTable(ctx context.Context, st *envelope.Store, r *report, table string) {
	samples, err := st.SampleRows(ctx, table, sampleRowCount)
	if err != nil {
		r.addf("Error searching %s: %v", table, err)
		return
	}
	if len(samples) == 0 {
		return
	}
	r.add("Sample data (first 3 rows):")
	for _, row := range samples {
		r.addf("  %s", row.String())
	}
}
