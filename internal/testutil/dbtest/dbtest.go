// Package dbtest provides shared fixture helpers for tests that need a
// realistic envelope database on disk. It is importable from any test
// package without circular dependency issues (it does not import
// internal/query).
package dbtest

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/envmail/envmail/internal/config"
)

// envelopeSchema mirrors the tables the engine's workflows touch. The
// foreign-key columns on messages hold row ids of the lookup tables, as
// in the real envelope index; the lookup tables use SQLite's implicit
// rowid, which is what the production queries address.
const envelopeSchema = `
CREATE TABLE messages (
	message_id TEXT,
	subject INTEGER,
	sender INTEGER,
	mailbox INTEGER,
	date_sent INTEGER,
	date_received INTEGER,
	flags INTEGER
);
CREATE TABLE subjects (
	subject TEXT
);
CREATE TABLE addresses (
	address TEXT,
	comment TEXT
);
CREATE TABLE sender_addresses (
	sender INTEGER,
	address INTEGER
);
CREATE TABLE recipients (
	message INTEGER,
	address INTEGER,
	type INTEGER,
	position INTEGER
);
CREATE TABLE mailboxes (
	url TEXT,
	total_count INTEGER
);
`

// Fixture is an envelope database laid out on disk the way a real Mail
// install lays it out, plus a Config pointing at it.
type Fixture struct {
	Cfg  *config.Config
	DB   *sql.DB
	Path string
}

// NewFixture creates a Mail directory tree under t.TempDir with an
// envelope database at <dir>/V10/MailData/Envelope Index and returns a
// read-write handle for seeding. The handle is closed automatically.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	mailDir := t.TempDir()
	dataDir := filepath.Join(mailDir, "V10", "MailData")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("create MailData dir: %v", err)
	}
	dbPath := filepath.Join(dataDir, "Envelope Index")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(envelopeSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	cfg := &config.Config{
		Mail: config.MailConfig{
			Directory:      mailDir,
			Version:        "V10",
			EnvelopeDB:     "Envelope Index",
			PrimaryAddress: "primary@example.com",
		},
	}

	return &Fixture{Cfg: cfg, DB: db, Path: dbPath}
}

// Exec runs a statement against the fixture database, failing the test on
// error.
func (f *Fixture) Exec(t testing.TB, query string, args ...any) {
	t.Helper()
	if _, err := f.DB.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// AddSubject inserts a subject with an explicit rowid and returns the id.
func (f *Fixture) AddSubject(t testing.TB, id int64, text string) int64 {
	t.Helper()
	f.Exec(t, "INSERT INTO subjects(ROWID, subject) VALUES (?, ?)", id, text)
	return id
}

// AddAddress inserts an address with an explicit rowid and returns the id.
func (f *Fixture) AddAddress(t testing.TB, id int64, address string) int64 {
	t.Helper()
	f.Exec(t, "INSERT INTO addresses(ROWID, address) VALUES (?, ?)", id, address)
	return id
}

// LinkSender maps an address row to a sender id.
func (f *Fixture) LinkSender(t testing.TB, senderID, addressID int64) {
	t.Helper()
	f.Exec(t, "INSERT INTO sender_addresses(sender, address) VALUES (?, ?)", senderID, addressID)
}

// AddMailbox inserts a mailbox with an explicit rowid and returns the id.
func (f *Fixture) AddMailbox(t testing.TB, id int64, url string) int64 {
	t.Helper()
	f.Exec(t, "INSERT INTO mailboxes(ROWID, url) VALUES (?, ?)", id, url)
	return id
}

// Message holds the seedable fields of a message row. Zero-valued id
// fields are stored as NULL to exercise the LEFT JOIN paths.
type Message struct {
	ID           int64
	MessageID    string
	SubjectID    int64
	SenderID     int64
	MailboxID    int64
	DateSent     int64
	DateReceived int64
}

// AddMessage inserts a message row.
func (f *Fixture) AddMessage(t testing.TB, m Message) {
	t.Helper()
	f.Exec(t, `INSERT INTO messages(ROWID, message_id, subject, sender, mailbox, date_sent, date_received)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, nullIfEmpty(m.MessageID), nullIfZero(m.SubjectID), nullIfZero(m.SenderID),
		nullIfZero(m.MailboxID), nullIfZero(m.DateSent), nullIfZero(m.DateReceived))
}

// AddRecipient links a message to an address with a recipient type code.
func (f *Fixture) AddRecipient(t testing.TB, messageID, addressID int64, typeCode int) {
	t.Helper()
	f.Exec(t, "INSERT INTO recipients(message, address, type) VALUES (?, ?, ?)",
		messageID, addressID, typeCode)
}

func nullIfZero(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
