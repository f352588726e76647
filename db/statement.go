// statement.go classifies SQL statements and sanity-checks generated text
// before it is allowed anywhere near execution.
package db

import (
	"fmt"
	"strings"
)

// OperationType identifies the kind of SQL statement.
type OperationType string

const (
	OpSelect         OperationType = "SELECT"
	OpInsert         OperationType = "INSERT"
	OpUpdate         OperationType = "UPDATE"
	OpDelete         OperationType = "DELETE"
	OpCreateTable    OperationType = "CREATE_TABLE"
	OpCreateIndex    OperationType = "CREATE_INDEX"
	OpAlterTable     OperationType = "ALTER_TABLE"
	OpDropTable      OperationType = "DROP_TABLE"
	OpDropIndex      OperationType = "DROP_INDEX"
	OpTruncate       OperationType = "TRUNCATE"
	OpCreateDatabase OperationType = "CREATE_DATABASE"
	OpDropDatabase   OperationType = "DROP_DATABASE"
	OpWith           OperationType = "WITH"
	OpUnknown        OperationType = "UNKNOWN"
)

// Classify determines the operation type from the statement's leading
// keyword(s). WITH is its own type; the executor treats it as a read.
func Classify(stmt string) OperationType {
	s := strings.ToUpper(strings.TrimSpace(stmt))

	switch {
	case strings.HasPrefix(s, "SELECT"):
		return OpSelect
	case strings.HasPrefix(s, "WITH"):
		return OpWith
	case strings.HasPrefix(s, "INSERT"):
		return OpInsert
	case strings.HasPrefix(s, "UPDATE"):
		return OpUpdate
	case strings.HasPrefix(s, "DELETE"):
		return OpDelete
	case strings.HasPrefix(s, "CREATE TABLE"):
		return OpCreateTable
	case strings.HasPrefix(s, "CREATE INDEX"), strings.HasPrefix(s, "CREATE UNIQUE INDEX"):
		return OpCreateIndex
	case strings.HasPrefix(s, "ALTER TABLE"):
		return OpAlterTable
	case strings.HasPrefix(s, "DROP TABLE"):
		return OpDropTable
	case strings.HasPrefix(s, "DROP INDEX"):
		return OpDropIndex
	case strings.HasPrefix(s, "TRUNCATE"):
		return OpTruncate
	case strings.HasPrefix(s, "CREATE DATABASE"), strings.HasPrefix(s, "CREATE SCHEMA"):
		return OpCreateDatabase
	case strings.HasPrefix(s, "DROP DATABASE"), strings.HasPrefix(s, "DROP SCHEMA"):
		return OpDropDatabase
	default:
		return OpUnknown
	}
}

// IsRead reports whether the operation returns a result set.
func (op OperationType) IsRead() bool {
	return op == OpSelect || op == OpWith
}

// validLeadingKeywords are the only words a generated statement may
// start with.
var validLeadingKeywords = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE",
	"CREATE", "ALTER", "DROP", "TRUNCATE", "WITH",
}

// SanityCheck verifies that extracted text is plausibly a single
// executable statement: non-empty, terminated with a semicolon, and
// starting with a recognized keyword. It deliberately does not parse
// SQL; the database is the authority on full syntax.
func SanityCheck(stmt string) error {
	s := strings.TrimSpace(stmt)
	if s == "" {
		return fmt.Errorf("empty statement")
	}
	if !strings.HasSuffix(s, ";") {
		return fmt.Errorf("statement does not end with a semicolon")
	}
	upper := strings.ToUpper(s)
	for _, kw := range validLeadingKeywords {
		if strings.HasPrefix(upper, kw) {
			return nil
		}
	}
	return fmt.Errorf("statement does not start with a recognized SQL keyword")
}
