// advisor.go maps execution-plan rows to performance advisories via a
// fixed rule table, plus static advice for non-read operations.
package db

import (
	"fmt"
	"strings"
)

// PlanRow is one flattened row of an execution plan: the access type
// (plan node type), the relation it touches, and free-text extra info.
type PlanRow struct {
	AccessType string
	Relation   string
	Extra      string
}

// AdvisoryRule matches a plan row and produces a message for it.
type AdvisoryRule struct {
	Name    string
	Matches func(PlanRow) bool
	Message func(PlanRow) string
}

// PlanRules is the fixed rule table, applied to every plan row in
// order. Findings keep their occurrence order and repeated findings
// are preserved: two full scans on different tables are two problems.
var PlanRules = []AdvisoryRule{
	{
		Name: "full-table-scan",
		Matches: func(r PlanRow) bool {
			return r.AccessType == "Seq Scan"
		},
		Message: func(r PlanRow) string {
			if r.Relation != "" {
				return fmt.Sprintf("full table scan on %q: consider adding an index", r.Relation)
			}
			return "full table scan detected: consider adding an index"
		},
	},
	{
		Name: "sort-without-index",
		Matches: func(r PlanRow) bool {
			return r.AccessType == "Sort" || strings.Contains(r.Extra, "Sort Key")
		},
		Message: func(r PlanRow) string {
			return "consider adding an index to satisfy the ORDER BY clause"
		},
	},
}

// Advise applies the rule table to every plan row.
func Advise(plan []PlanRow) []string {
	var findings []string
	for _, row := range plan {
		for _, rule := range PlanRules {
			if rule.Matches(row) {
				findings = append(findings, rule.Message(row))
			}
		}
	}
	return findings
}

// StaticAdvice returns fixed guidance for operations that have no plan
// to analyze.
func StaticAdvice(op OperationType) []string {
	switch op {
	case OpInsert:
		return []string{"ensure proper indexing on WHERE clause columns for optimal performance"}
	case OpUpdate, OpDelete:
		return []string{
			"ensure proper indexing on WHERE clause columns for optimal performance",
			"always use WHERE conditions to avoid unintended mass operations",
		}
	case OpCreateTable:
		return []string{
			"consider adding indexes on frequently queried columns",
			"use proper data types and constraints for data integrity",
		}
	case OpCreateIndex:
		return []string{
			"monitor index usage and remove unused indexes",
			"consider composite indexes for multi-column queries",
		}
	case OpDropTable, OpDropIndex, OpDropDatabase, OpTruncate:
		return []string{"caution: this operation is irreversible, make sure you have backups"}
	default:
		return nil
	}
}
