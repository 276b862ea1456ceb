// Package querytest provides a mock query engine for handler tests.
package querytest

import (
	"context"

	"github.com/envmail/envmail/internal/query"
)

// Call records one engine invocation: the method name and its arguments
// in declaration order.
type Call struct {
	Method string
	Args   []any
}

// MockEngine implements query.Engine with canned responses. Every method
// returns Text and Err and records the call.
type MockEngine struct {
	Text string
	Err  error

	Calls []Call
}

var _ query.Engine = (*MockEngine)(nil)

func (m *MockEngine) record(method string, args ...any) (string, error) {
	m.Calls = append(m.Calls, Call{Method: method, Args: args})
	return m.Text, m.Err
}

// LastCall returns the most recent recorded call.
func (m *MockEngine) LastCall() Call {
	if len(m.Calls) == 0 {
		return Call{}
	}
	return m.Calls[len(m.Calls)-1]
}

func (m *MockEngine) SearchMessages(_ context.Context, query string, limit int) (string, error) {
	return m.record("SearchMessages", query, limit)
}

func (m *MockEngine) ListAccounts(_ context.Context) (string, error) {
	return m.record("ListAccounts")
}

func (m *MockEngine) ExamineDatabase(_ context.Context) (string, error) {
	return m.record("ExamineDatabase")
}

func (m *MockEngine) SearchAllTables(_ context.Context, dateFilter string, limit int) (string, error) {
	return m.record("SearchAllTables", dateFilter, limit)
}

func (m *MockEngine) FindSentEmails(_ context.Context, dateFilter, address string, limit int) (string, error) {
	return m.record("FindSentEmails", dateFilter, address, limit)
}

func (m *MockEngine) SearchBySubject(_ context.Context, subjectText, dateFilter string, limit int) (string, error) {
	return m.record("SearchBySubject", subjectText, dateFilter, limit)
}
