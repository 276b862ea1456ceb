package envelope

import (
	"strings"
	"time"
)

// Predicate is one AND-joined condition of a SELECT. All values travel in
// Args as bound parameters; Expr never embeds an untrusted value. Column
// names baked into Expr must come from the live catalog.
type Predicate struct {
	Expr string
	Args []any
}

// TextMatch builds a case-insensitive substring predicate, OR-combined
// across the given text columns.
func TextMatch(text string, cols ...string) Predicate {
	pattern := "%" + text + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = c + " LIKE ?"
		args[i] = pattern
	}
	expr := strings.Join(parts, " OR ")
	if len(parts) > 1 {
		expr = "(" + expr + ")"
	}
	return Predicate{Expr: expr, Args: args}
}

// DateRange builds a date predicate for a calendar date string
// (YYYY-MM-DD): a half-open [start, start+1day) range of Unix epochs in
// the local timezone. When the string does not parse, it falls back to a
// substring match on the rendered timestamp. The fallback is deliberately
// loose and is kept for compatibility with existing behavior.
func DateRange(col, dateFilter string) Predicate {
	day, err := time.ParseInLocation("2006-01-02", dateFilter, time.Local)
	if err != nil {
		return Predicate{
			Expr: "datetime(" + col + ", 'unixepoch') LIKE ?",
			Args: []any{"%" + dateFilter + "%"},
		}
	}
	start := day.Unix()
	end := day.AddDate(0, 0, 1).Unix()
	return Predicate{
		Expr: col + " >= ? AND " + col + " < ?",
		Args: []any{start, end},
	}
}

// DateRangeEither builds a date predicate that matches when either of two
// timestamp columns falls on the given calendar date, with the same loose
// fallback as DateRange.
func DateRangeEither(colA, colB, dateFilter string) Predicate {
	day, err := time.ParseInLocation("2006-01-02", dateFilter, time.Local)
	if err != nil {
		pattern := "%" + dateFilter + "%"
		return Predicate{
			Expr: "(datetime(" + colA + ", 'unixepoch') LIKE ? OR datetime(" + colB + ", 'unixepoch') LIKE ?)",
			Args: []any{pattern, pattern},
		}
	}
	start := day.Unix()
	end := day.AddDate(0, 0, 1).Unix()
	return Predicate{
		Expr: "((" + colA + " >= ? AND " + colA + " < ?) OR (" + colB + " >= ? AND " + colB + " < ?))",
		Args: []any{start, end, start, end},
	}
}

// Membership builds a "col IN (?, ...)" predicate with exactly one
// placeholder per id. ok is false for an empty id list: the caller must
// short-circuit to "no matching rows" without issuing a query.
func Membership(col string, ids []int64) (p Predicate, ok bool) {
	if len(ids) == 0 {
		return Predicate{}, false
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return Predicate{
		Expr: col + " IN (" + strings.Join(placeholders, ",") + ")",
		Args: args,
	}, true
}

// Select assembles a single parameterized SELECT statement. Table and
// column names are taken only from the live catalog; predicate values are
// always bound.
type Select struct {
	Table   string
	Columns []string
	Joins   []string // LEFT JOIN clauses, verbatim
	Where   []Predicate
	OrderBy string // defaults to "ROWID DESC"
	Limit   int    // always emitted, as a bound parameter
}

// SQL renders the statement and its bound arguments.
func (s Select) SQL() (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	for _, j := range s.Joins {
		b.WriteString(" ")
		b.WriteString(j)
	}

	if len(s.Where) > 0 {
		b.WriteString(" WHERE ")
		for i, p := range s.Where {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.WriteString(p.Expr)
			args = append(args, p.Args...)
		}
	}

	order := s.OrderBy
	if order == "" {
		order = "ROWID DESC"
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(order)

	b.WriteString(" LIMIT ?")
	args = append(args, s.Limit)

	return b.String(), args
}
