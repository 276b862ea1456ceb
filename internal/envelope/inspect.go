package envelope

import (
	"context"
	"database/sql"
	"fmt"
)

// Column describes one column of a live table: its name and declared type,
// in catalog order.
type Column struct {
	Name string
	Type string
}

// Tables returns the database's table names in lexicographic order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	return s.catalogNames(ctx, "table")
}

// Views returns the database's view names in lexicographic order.
func (s *Store) Views(ctx context.Context) ([]string, error) {
	return s.catalogNames(ctx, "view")
}

func (s *Store) catalogNames(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = ? ORDER BY name", kind)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Describe returns a table's columns in catalog order. The table name must
// come from Tables or Views, never from caller input.
func (s *Store) Describe(ctx context.Context, table string) ([]Column, error) {
	// PRAGMA arguments cannot be bound as parameters.
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, declType   string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: name, Type: declType})
	}
	return cols, rows.Err()
}

// RowCount returns a table's row count. A failed count (for example a
// locked sidecar table) reports ok=false rather than an error, because
// inspection is diagnostic and must never abort mid-report.
func (s *Store) RowCount(ctx context.Context, table string) (count int64, ok bool) {
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))).Scan(&count)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SampleRows returns up to n rows of a table with all columns, for
// diagnostic display.
func (s *Store) SampleRows(ctx context.Context, table string, n int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s LIMIT ?", quoteIdent(table)), n)
	if err != nil {
		return nil, err
	}
	return ScanRows(rows)
}
