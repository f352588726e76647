// exec.go runs final statements and gathers EXPLAIN-based advice.
//
// Each Run call acquires one connection from the pool, uses it for the
// statement (and the plan fetch, for reads), and releases it on return.
// Errors from the database are returned, never logged or printed.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Result holds the output of one executed statement.
type Result struct {
	Columns    []string      `json:"columns,omitempty"`
	Rows       [][]string    `json:"rows,omitempty"`
	Affected   int64         `json:"rows_affected"`
	Operation  OperationType `json:"operation_type"`
	Advisories []string      `json:"advisories,omitempty"`
}

// ExecutionFault wraps a database error from running a statement.
// The engine's native message is preserved and the statement is never
// retried.
type ExecutionFault struct {
	Statement string
	Err       error
}

func (e *ExecutionFault) Error() string {
	return fmt.Sprintf("execution fault: %v", e.Err)
}

func (e *ExecutionFault) Unwrap() error {
	return e.Err
}

// Run executes a statement and derives advisories. Read statements
// (SELECT, WITH) fetch all result rows and analyze the execution plan;
// everything else reports the affected-row count plus static advice
// for its operation type.
func (d *DB) Run(ctx context.Context, stmt, schema string) (*Result, error) {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return nil, fmt.Errorf("empty statement")
	}
	op := Classify(stmt)

	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if schema != "" {
		setPath := fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize())
		if _, err := conn.Exec(ctx, setPath); err != nil {
			return nil, &ExecutionFault{Statement: stmt, Err: err}
		}
	}

	result := &Result{Operation: op}

	if op.IsRead() {
		rows, err := conn.Query(ctx, stmt)
		if err != nil {
			return nil, &ExecutionFault{Statement: stmt, Err: err}
		}
		for _, fd := range rows.FieldDescriptions() {
			result.Columns = append(result.Columns, fd.Name)
		}
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				rows.Close()
				return nil, &ExecutionFault{Statement: stmt, Err: err}
			}
			row := make([]string, len(values))
			for i, v := range values {
				row[i] = fmt.Sprintf("%v", v)
			}
			result.Rows = append(result.Rows, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, &ExecutionFault{Statement: stmt, Err: err}
		}
		result.Affected = int64(len(result.Rows))

		// Plan analysis is advisory only: if EXPLAIN itself fails we
		// report that as a finding rather than failing the run.
		plan, err := explainRows(ctx, conn, stmt)
		if err != nil {
			result.Advisories = append(result.Advisories,
				fmt.Sprintf("could not analyze execution plan: %v", err))
		} else {
			result.Advisories = append(result.Advisories, Advise(plan)...)
		}
		return result, nil
	}

	tag, err := conn.Exec(ctx, stmt)
	if err != nil {
		return nil, &ExecutionFault{Statement: stmt, Err: err}
	}
	result.Affected = tag.RowsAffected()
	result.Advisories = StaticAdvice(op)
	return result, nil
}

// planNode mirrors the node shape of EXPLAIN (FORMAT JSON) output.
type planNode struct {
	NodeType     string     `json:"Node Type"`
	RelationName string     `json:"Relation Name"`
	IndexName    string     `json:"Index Name"`
	SortKey      []string   `json:"Sort Key"`
	Filter       string     `json:"Filter"`
	Plans        []planNode `json:"Plans"`
}

type explainConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainRows fetches the execution plan for a statement and flattens
// the plan tree into rows, parent before children.
func explainRows(ctx context.Context, conn explainConn, stmt string) ([]PlanRow, error) {
	var planJSON string
	err := conn.QueryRow(ctx, "EXPLAIN (FORMAT JSON) "+stmt).Scan(&planJSON)
	if err != nil {
		return nil, err
	}
	return FlattenPlan(planJSON)
}

// FlattenPlan converts EXPLAIN (FORMAT JSON) output into a flat,
// ordered list of PlanRow.
func FlattenPlan(planJSON string) ([]PlanRow, error) {
	var parsed []struct {
		Plan planNode `json:"Plan"`
	}
	if err := json.Unmarshal([]byte(planJSON), &parsed); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	var out []PlanRow
	for _, p := range parsed {
		flatten(p.Plan, &out)
	}
	return out, nil
}

func flatten(n planNode, out *[]PlanRow) {
	var extras []string
	if len(n.SortKey) > 0 {
		extras = append(extras, "Sort Key: "+strings.Join(n.SortKey, ", "))
	}
	if n.Filter != "" {
		extras = append(extras, "Filter: "+n.Filter)
	}
	if n.IndexName != "" {
		extras = append(extras, "Index: "+n.IndexName)
	}
	*out = append(*out, PlanRow{
		AccessType: n.NodeType,
		Relation:   n.RelationName,
		Extra:      strings.Join(extras, "; "),
	})
	for _, child := range n.Plans {
		flatten(child, out)
	}
}
