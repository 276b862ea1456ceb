package query

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/envmail/envmail/internal/envelope"
)

// Recipient rows of type 1 are "To" recipients.
const recipientTypeTo = 1

// recipientFetchLimit caps the follow-up recipient lookup per message.
const recipientFetchLimit = 3

// FindSentEmails resolves emails sent by an address through a fixed chain
// of dependent lookups: address string to address row id, address id to
// sender id set, sender ids to messages. An empty intermediate stage halts
// the chain with a descriptive message. An empty address falls back to the
// configured primary address.
func (e *EnvelopeEngine) FindSentEmails(ctx context.Context, dateFilter, address string, limit int) (string, error) {
	if address == "" {
		address = e.cfg.Mail.PrimaryAddress
	}

	st, diag := e.openEnvelope()
	if diag != nil {
		return "", diag
	}
	defer st.Close()

	var r report
	if dateFilter != "" {
		r.addf("Searching for emails sent by %s on %s", address, dateFilter)
	} else {
		r.addf("Searching for emails sent by %s", address)
	}
	r.blank()

	// Stage 1: address string to address row id (exact match).
	var addressID int64
	err := st.DB().QueryRowContext(ctx,
		"SELECT ROWID FROM addresses WHERE address = ?", address).Scan(&addressID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFoundDiag(
			"Email address %s not found in addresses table\nTry updating mail.primary_address in the configuration",
			address)
	}
	if err != nil {
		return "", queryFailedDiag("Error finding sent emails: %v", err)
	}
	r.addf("Found address ID: %d", addressID)

	// Stage 2: address id to sender id set.
	senderIDs, err := scanIDs(ctx, st,
		"SELECT sender FROM sender_addresses WHERE address = ?", addressID)
	if err != nil {
		return "", queryFailedDiag("Error finding sent emails: %v", err)
	}
	if len(senderIDs) == 0 {
		return "", notFoundDiag("No sender records found for address ID %d", addressID)
	}
	r.addf("Found sender IDs: %v", senderIDs)

	// Stage 3: messages sent by those sender ids.
	member, ok := envelope.Membership("m.sender", senderIDs)
	if !ok {
		return "", notFoundDiag("No sender records found for address ID %d", addressID)
	}
	sel := envelope.Select{
		Table: "messages m",
		Columns: []string{
			"m.ROWID", "m.message_id", "s.subject",
			"datetime(m.date_sent, 'unixepoch') AS sent_date",
			"datetime(m.date_received, 'unixepoch') AS received_date",
			"mb.url AS mailbox_url",
		},
		Joins: []string{
			"LEFT JOIN subjects s ON m.subject = s.ROWID",
			"LEFT JOIN mailboxes mb ON m.mailbox = mb.ROWID",
		},
		Where:   []envelope.Predicate{member},
		OrderBy: "m.date_sent DESC",
		Limit:   clampLimit(limit),
	}
	if dateFilter != "" {
		sel.Where = append(sel.Where, envelope.DateRange("m.date_sent", dateFilter))
	}

	rows, err := runSelect(ctx, st, sel)
	if err != nil {
		return "", queryFailedDiag("Error finding sent emails: %v", err)
	}

	if len(rows) == 0 {
		r.add("No sent messages found matching criteria")
		r.addf("Note: Check if %s is correct in configuration", address)
		return r.String(), nil
	}

	r.blank()
	r.addf("Found %d sent messages:", len(rows))
	r.blank()

	for _, row := range rows {
		r.addf("Message ID: %s", fieldOr(row, "rowid", unknown))
		r.addf("Subject: %s", fieldOr(row, "subject", noSubject))
		r.addf("Sent Date: %s", fieldOr(row, "sent_date", unknown))
		r.addf("Received Date: %s", fieldOr(row, "received_date", unknown))
		r.addf("Mailbox: %s", fieldOr(row, "mailbox_url", unknown))
		e.addRecipients(ctx, st, &r, row)
		r.separator()
	}

	return r.String(), nil
}

// SearchBySubject resolves emails whose normalized subject matches a text
// fragment: subject text to subject id set, subject ids to messages, with
// subject, mailbox, and sender address resolved in one pass through LEFT
// JOINs so null foreign keys still yield a row.
func (e *EnvelopeEngine) SearchBySubject(ctx context.Context, subjectText, dateFilter string, limit int) (string, error) {
	if subjectText == "" {
		return "Subject text is required", nil
	}

	st, diag := e.openEnvelope()
	if diag != nil {
		return "", diag
	}
	defer st.Close()

	var r report
	if dateFilter != "" {
		r.addf("Searching for emails with subject containing: '%s' on %s", subjectText, dateFilter)
	} else {
		r.addf("Searching for emails with subject containing: '%s'", subjectText)
	}
	r.blank()

	// Stage 1: subject text to subject id set.
	type subjectRow struct {
		id   int64
		text string
	}
	var subjects []subjectRow
	srows, err := st.DB().QueryContext(ctx,
		"SELECT ROWID, subject FROM subjects WHERE subject LIKE ?", "%"+subjectText+"%")
	if err != nil {
		return "", queryFailedDiag("Error searching by subject: %v", err)
	}
	for srows.Next() {
		var s subjectRow
		if err := srows.Scan(&s.id, &s.text); err != nil {
			srows.Close()
			return "", queryFailedDiag("Error searching by subject: %v", err)
		}
		subjects = append(subjects, s)
	}
	srows.Close()
	if err := srows.Err(); err != nil {
		return "", queryFailedDiag("Error searching by subject: %v", err)
	}

	if len(subjects) == 0 {
		return "", notFoundDiag("No subjects found containing '%s'", subjectText)
	}

	r.addf("Found %d matching subjects:", len(subjects))
	subjectIDs := make([]int64, len(subjects))
	for i, s := range subjects {
		subjectIDs[i] = s.id
		r.addf("  Subject ID %d: %s", s.id, s.text)
	}
	r.blank()

	// Stage 2: messages for those subject ids.
	member, ok := envelope.Membership("m.subject", subjectIDs)
	if !ok {
		return "", notFoundDiag("No subjects found containing '%s'", subjectText)
	}
	sel := envelope.Select{
		Table: "messages m",
		Columns: []string{
			"m.ROWID", "m.message_id", "s.subject",
			"datetime(m.date_sent, 'unixepoch') AS sent_date",
			"datetime(m.date_received, 'unixepoch') AS received_date",
			"mb.url AS mailbox_url",
			"m.sender",
			"sender_addr.address AS sender_address",
		},
		Joins: []string{
			"LEFT JOIN subjects s ON m.subject = s.ROWID",
			"LEFT JOIN mailboxes mb ON m.mailbox = mb.ROWID",
			"LEFT JOIN sender_addresses sa ON m.sender = sa.sender",
			"LEFT JOIN addresses sender_addr ON sa.address = sender_addr.ROWID",
		},
		Where:   []envelope.Predicate{member},
		OrderBy: "m.date_sent DESC, m.date_received DESC",
		Limit:   clampLimit(limit),
	}
	if dateFilter != "" {
		sel.Where = append(sel.Where,
			envelope.DateRangeEither("m.date_sent", "m.date_received", dateFilter))
	}

	rows, err := runSelect(ctx, st, sel)
	if err != nil {
		return "", queryFailedDiag("Error searching by subject: %v", err)
	}

	if len(rows) == 0 {
		r.add("No messages found matching criteria")
		return r.String(), nil
	}

	r.addf("Found %d messages:", len(rows))
	r.blank()

	for _, row := range rows {
		r.addf("Message ID: %s", fieldOr(row, "rowid", unknown))
		r.addf("Subject: %s", fieldOr(row, "subject", noSubject))
		r.addf("Sent Date: %s", fieldOr(row, "sent_date", unknown))
		r.addf("Received Date: %s", fieldOr(row, "received_date", unknown))
		r.addf("Sender Address: %s", fieldOr(row, "sender_address", unknown))
		r.addf("Mailbox: %s", fieldOr(row, "mailbox_url", unknown))
		e.addRecipients(ctx, st, &r, row)
		r.separator()
	}

	return r.String(), nil
}

// addRecipients fetches up to three "To" recipients for a message row and
// appends them as a single line. Lookup failures are swallowed: recipient
// display is best-effort and never fails a report.
func (e *EnvelopeEngine) addRecipients(ctx context.Context, st *envelope.Store, r *report, row envelope.Row) {
	idVal, ok := row.Value("rowid")
	if !ok || idVal.IsNull() {
		return
	}

	rows, err := st.DB().QueryContext(ctx, `
		SELECT a.address
		FROM recipients r
		JOIN addresses a ON r.address = a.ROWID
		WHERE r.message = ? AND r.type = ?
		LIMIT ?`, idVal.Int(), recipientTypeTo, recipientFetchLimit)
	if err != nil {
		e.log.Debug("recipient lookup failed", "message", idVal.Int(), "error", err)
		return
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return
		}
		recipients = append(recipients, addr)
	}
	if err := rows.Err(); err != nil {
		return
	}

	if len(recipients) > 0 {
		r.addf("To: %s", strings.Join(recipients, ", "))
	}
}

// scanIDs runs a single-column integer query and returns the ids.
func scanIDs(ctx context.Context, st *envelope.Store, query string, args ...any) ([]int64, error) {
	rows, err := st.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
