// schema.go provides the schema snapshot used by the query pipeline.
//
// A Snapshot is an ordered view of every table in a schema with its
// columns in declared (ordinal) order. Column order matters: statement
// generation for INSERT must supply values in declared column order,
// so the introspection query sorts by ordinal_position and the
// snapshot preserves that order everywhere.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Column describes a single column in a table.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Ordinal  int    `json:"ordinal"`
}

// Table holds a table name and its columns in ordinal order.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Snapshot is the ordered schema view for one pipeline run.
// It is built once per run and never mutated afterwards.
type Snapshot struct {
	Schema string  `json:"schema"`
	Tables []Table `json:"tables"`
}

// Empty reports whether the snapshot contains no tables.
func (s Snapshot) Empty() bool {
	return len(s.Tables) == 0
}

// Table returns the named table, matching case-insensitively.
func (s Snapshot) Table(name string) (Table, bool) {
	for _, t := range s.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Table{}, false
}

// ContextBlock renders the snapshot as a text block for prompts:
// one line per table, columns in declared order with their types.
func (s Snapshot) ContextBlock() string {
	var sb strings.Builder
	for _, t := range s.Tables {
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = fmt.Sprintf("%s (%s)", c.Name, c.DataType)
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", t.Name, strings.Join(cols, ", ")))
	}
	return sb.String()
}

// SchemaInfo summarizes one schema for the catalog listing.
type SchemaInfo struct {
	Name       string  `json:"name"`
	TableCount int     `json:"table_count"`
	SizeMB     float64 `json:"size_mb"`
}

// Snapshot fetches the ordered schema snapshot for a named schema.
// Returns an empty snapshot (not an error) if the schema has no tables
// or does not exist.
func (d *DB) Snapshot(ctx context.Context, schema string) (Snapshot, error) {
	if schema == "" {
		schema = "public"
	}
	query := `
		SELECT table_name, column_name, data_type, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = $1
		ORDER BY table_name, ordinal_position`

	rows, err := d.Pool.Query(ctx, query, schema)
	if err != nil {
		return Snapshot{}, fmt.Errorf("schema snapshot %s: %w", schema, err)
	}
	defer rows.Close()

	snap := Snapshot{Schema: schema}
	var current *Table
	for rows.Next() {
		var table string
		var col Column
		if err := rows.Scan(&table, &col.Name, &col.DataType, &col.Ordinal); err != nil {
			return Snapshot{}, err
		}
		if current == nil || current.Name != table {
			snap.Tables = append(snap.Tables, Table{Name: table})
			current = &snap.Tables[len(snap.Tables)-1]
		}
		current.Columns = append(current.Columns, col)
	}
	return snap, rows.Err()
}

// ListSchemas returns all user schemas with table counts and on-disk size.
// System schemas are filtered out, mirroring what a DBA would consider
// "their" databases.
func (d *DB) ListSchemas(ctx context.Context) ([]SchemaInfo, error) {
	query := `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
		ORDER BY schema_name`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	infos := make([]SchemaInfo, 0, len(names))
	for _, name := range names {
		info := SchemaInfo{Name: name}

		err := d.Pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = $1 AND table_type = 'BASE TABLE'`, name).Scan(&info.TableCount)
		if err != nil {
			return nil, fmt.Errorf("table count %s: %w", name, err)
		}

		err = d.Pool.QueryRow(ctx, `
			SELECT ROUND(COALESCE(SUM(pg_total_relation_size(
				quote_ident(schemaname) || '.' || quote_ident(tablename)
			)), 0) / 1024.0 / 1024.0, 2)
			FROM pg_tables WHERE schemaname = $1`, name).Scan(&info.SizeMB)
		if err != nil {
			return nil, fmt.Errorf("schema size %s: %w", name, err)
		}

		infos = append(infos, info)
	}
	return infos, nil
}

// SampleCount counts rows in a table, capped at limit. The feasibility
// validator uses this to tell "table has data" from "table is empty"
// without scanning large tables.
func (d *DB) SampleCount(ctx context.Context, schema, table string, limit int) (int, error) {
	if schema == "" {
		schema = "public"
	}
	ident := pgx.Identifier{schema, table}.Sanitize()
	query := fmt.Sprintf("SELECT COUNT(*) FROM (SELECT 1 FROM %s LIMIT $1) s", ident)

	var n int
	if err := d.Pool.QueryRow(ctx, query, limit).Scan(&n); err != nil {
		return 0, fmt.Errorf("sample count %s.%s: %w", schema, table, err)
	}
	return n, nil
}
