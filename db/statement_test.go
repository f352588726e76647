package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		stmt string
		want OperationType
	}{
		{"SELECT * FROM players;", OpSelect},
		{"  select 1;", OpSelect},
		{"WITH x AS (SELECT 1) SELECT * FROM x;", OpWith},
		{"INSERT INTO teams (name) VALUES ('CSK');", OpInsert},
		{"UPDATE players SET runs = 0;", OpUpdate},
		{"DELETE FROM matches WHERE id = 1;", OpDelete},
		{"CREATE TABLE t (id INT);", OpCreateTable},
		{"CREATE INDEX idx_name ON t (id);", OpCreateIndex},
		{"CREATE UNIQUE INDEX idx_u ON t (id);", OpCreateIndex},
		{"ALTER TABLE t ADD COLUMN c INT;", OpAlterTable},
		{"DROP TABLE t;", OpDropTable},
		{"DROP INDEX idx_name;", OpDropIndex},
		{"TRUNCATE TABLE t;", OpTruncate},
		{"CREATE DATABASE cricket_info;", OpCreateDatabase},
		{"CREATE SCHEMA reporting;", OpCreateDatabase},
		{"DROP DATABASE cricket_info;", OpDropDatabase},
		{"DROP SCHEMA reporting;", OpDropDatabase},
		{"EXPLAIN SELECT 1;", OpUnknown},
		{"", OpUnknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.stmt), "stmt %q", tc.stmt)
	}
}

func TestIsRead(t *testing.T) {
	assert.True(t, OpSelect.IsRead())
	assert.True(t, OpWith.IsRead())
	assert.False(t, OpInsert.IsRead())
	assert.False(t, OpDropTable.IsRead())
}

func TestSanityCheck(t *testing.T) {
	assert.NoError(t, SanityCheck("SELECT 1;"))
	assert.NoError(t, SanityCheck("  DROP DATABASE cricket_info;  "))
	assert.NoError(t, SanityCheck("WITH x AS (SELECT 1) SELECT * FROM x;"))

	assert.Error(t, SanityCheck(""), "empty")
	assert.Error(t, SanityCheck("   "), "whitespace only")
	assert.Error(t, SanityCheck("SELECT 1"), "missing terminator")
	assert.Error(t, SanityCheck("please drop the table;"), "not a SQL keyword")
	assert.Error(t, SanityCheck("GRANT ALL ON t TO alice;"), "unrecognized operation")
}
