// Package query implements the envelope query engine: the read-only
// operations exposed as MCP tools. Every operation is request/response and
// stateless across calls; the only state is a per-call read-only database
// connection, opened on entry and closed on every exit path.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/envmail/envmail/internal/config"
	"github.com/envmail/envmail/internal/envelope"
)

// defaultLimit is the result cap applied when a caller omits a limit or
// supplies a non-positive one.
const defaultLimit = 10

// Engine provides the envelope query operations. Each returns a single
// formatted text report on success. Soft failures (missing database,
// empty lookup stages, query errors) come back as a *Diagnostic error;
// anything else is unexpected.
type Engine interface {
	SearchMessages(ctx context.Context, query string, limit int) (string, error)
	ListAccounts(ctx context.Context) (string, error)
	ExamineDatabase(ctx context.Context) (string, error)
	SearchAllTables(ctx context.Context, dateFilter string, limit int) (string, error)
	FindSentEmails(ctx context.Context, dateFilter, address string, limit int) (string, error)
	SearchBySubject(ctx context.Context, subjectText, dateFilter string, limit int) (string, error)
}

// EnvelopeEngine implements Engine against an Apple Mail envelope
// database. Configuration is injected at construction; the engine holds
// no process-wide state and no open connection between calls.
type EnvelopeEngine struct {
	cfg *config.Config
	log *slog.Logger
}

// NewEnvelopeEngine creates an engine for the configured mail install.
func NewEnvelopeEngine(cfg *config.Config, logger *slog.Logger) *EnvelopeEngine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EnvelopeEngine{cfg: cfg, log: logger}
}

// openEnvelope opens a fresh read-only connection for one call. A missing
// database file is a configuration diagnostic, not an error: absence is a
// normal, reported condition.
func (e *EnvelopeEngine) openEnvelope() (*envelope.Store, *Diagnostic) {
	path := e.cfg.EnvelopePath()

	if _, err := os.Stat(path); err != nil {
		return nil, configDiag(
			"Envelope database not found at: %s\nPlease check mail.directory and mail.version in the configuration",
			path)
	}

	st, err := envelope.Open(path)
	if err != nil {
		return nil, queryFailedDiag("Database error: %v", err)
	}
	return st, nil
}

// clampLimit applies the default result cap to missing or non-positive
// limits so no query ever runs unbounded.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

// runSelect executes a built SELECT and drains the result set.
func runSelect(ctx context.Context, st *envelope.Store, sel envelope.Select) ([]envelope.Row, error) {
	sqlStr, args := sel.SQL()
	rows, err := st.DB().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sel.Table, err)
	}
	return envelope.ScanRows(rows)
}
