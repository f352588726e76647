package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStripsFencedBlock(t *testing.T) {
	raw := "Here you go:\n```sql\nSELECT * FROM players;\n```\nLet me know if you need more."
	assert.Equal(t, "SELECT * FROM players;", Extract(raw))
}

func TestExtractPlainFence(t *testing.T) {
	raw := "```\nSELECT name FROM teams;\n```"
	assert.Equal(t, "SELECT name FROM teams;", Extract(raw))
}

func TestExtractInsertWithNestedSelect(t *testing.T) {
	raw := `Sure! This copies the rows over:

INSERT INTO archive_matches (id, score)
SELECT id, score FROM matches WHERE season = 2023;

The SELECT feeds the INSERT.`
	got := Extract(raw)
	assert.True(t, len(got) > 0)
	assert.Contains(t, got, "INSERT INTO archive_matches")
	assert.Contains(t, got, "SELECT id, score FROM matches")
	assert.Equal(t, byte(';'), got[len(got)-1])
}

func TestExtractWithClauseBeforeSelect(t *testing.T) {
	raw := `WITH ranked AS (SELECT id, RANK() OVER (ORDER BY score DESC) r FROM players)
SELECT * FROM ranked WHERE r <= 3;`
	got := Extract(raw)
	assert.True(t, len(got) >= 4 && got[:4] == "WITH", "got %q", got)
}

func TestExtractCreateTableAsSelect(t *testing.T) {
	raw := "Use this: CREATE TABLE top_players AS SELECT * FROM players WHERE runs > 1000;"
	got := Extract(raw)
	assert.Contains(t, got, "CREATE TABLE top_players")
}

func TestExtractDropDatabase(t *testing.T) {
	raw := "```sql\nDROP DATABASE cricket_info;\n```"
	assert.Equal(t, "DROP DATABASE cricket_info;", Extract(raw))
}

func TestExtractSelectFromCommentary(t *testing.T) {
	raw := "The following statement lists all users.\n\nSELECT id, name FROM users ORDER BY name;\n\nIt sorts by name."
	assert.Equal(t, "SELECT id, name FROM users ORDER BY name;", Extract(raw))
}

func TestExtractNoMatchReturnsStrippedText(t *testing.T) {
	raw := "```sql\nthis is not SQL at all\n```"
	assert.Equal(t, "this is not SQL at all", Extract(raw))
}

func TestExtractStopsAtFirstTerminator(t *testing.T) {
	raw := "DELETE FROM logs WHERE age > 90; -- and then some trailing text; with another semicolon"
	assert.Equal(t, "DELETE FROM logs WHERE age > 90;", Extract(raw))
}
