package envelope

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind discriminates the storage class of a fetched column value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindText
	KindBlob
)

// Value is a tagged scalar fetched from the database. Using an explicit
// variant instead of interface{} lets the formatter pattern-match
// presence/absence without duck-typed lookups.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
}

// NullValue returns the null Value.
func NullValue() Value { return Value{kind: KindNull} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a floating-point Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// TextValue returns a text Value.
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

// BlobValue returns a blob Value.
func BlobValue(b []byte) Value { return Value{kind: KindBlob, b: b} }

// Kind returns the value's storage class.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer value, or 0 for other kinds.
func (v Value) Int() int64 {
	if v.kind == KindInt {
		return v.i
	}
	return 0
}

// Text returns the text value, or "" for other kinds.
func (v Value) Text() string {
	if v.kind == KindText {
		return v.s
	}
	return ""
}

// String renders the value for diagnostic output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBlob:
		return fmt.Sprintf("<blob %d bytes>", len(v.b))
	default:
		return "NULL"
	}
}

// Row is an ordered mapping from column name to tagged value. Column order
// follows the result set, which for catalog-driven queries matches the
// live catalog order.
type Row struct {
	columns []string
	values  []Value
}

// Columns returns the column names in result-set order.
func (r Row) Columns() []string { return r.columns }

// Value returns the value for a column and whether the column exists.
func (r Row) Value(name string) (Value, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// String renders the row as "{col: val, col: val}" in column order.
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteString(": ")
		b.WriteString(r.values[i].String())
	}
	b.WriteByte('}')
	return b.String()
}

// ScanRow reads the current result row into a Row. rows.Next must already
// have returned true.
func ScanRow(rows *sql.Rows) (Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return Row{}, err
	}

	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return Row{}, err
	}

	row := Row{
		columns: append([]string(nil), cols...),
		values:  make([]Value, len(cols)),
	}
	for i, v := range raw {
		row.values[i] = tagValue(v)
	}
	return row, nil
}

// ScanRows drains a result set into Rows and closes it.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	var out []Row
	for rows.Next() {
		r, err := ScanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// tagValue classifies a driver value into a tagged Value.
func tagValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case int64:
		return IntValue(x)
	case float64:
		return FloatValue(x)
	case bool:
		if x {
			return IntValue(1)
		}
		return IntValue(0)
	case string:
		return TextValue(x)
	case []byte:
		return BlobValue(append([]byte(nil), x...))
	case time.Time:
		return TextValue(x.Format("2006-01-02 15:04:05"))
	default:
		return TextValue(fmt.Sprint(x))
	}
}
