package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviseFullTableScan(t *testing.T) {
	plan := []PlanRow{
		{AccessType: "Seq Scan", Relation: "players"},
	}
	findings := Advise(plan)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "index")
	assert.Contains(t, findings[0], "players")
}

func TestAdviseSortNode(t *testing.T) {
	plan := []PlanRow{
		{AccessType: "Sort", Extra: "Sort Key: name"},
		{AccessType: "Index Scan", Relation: "players", Extra: "Index: players_pkey"},
	}
	findings := Advise(plan)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "ORDER BY")
}

func TestAdvisePreservesOrderAndRepeats(t *testing.T) {
	plan := []PlanRow{
		{AccessType: "Seq Scan", Relation: "matches"},
		{AccessType: "Sort", Extra: "Sort Key: score"},
		{AccessType: "Seq Scan", Relation: "players"},
	}
	findings := Advise(plan)
	require.Len(t, findings, 3)
	assert.Contains(t, findings[0], "matches")
	assert.Contains(t, findings[1], "ORDER BY")
	assert.Contains(t, findings[2], "players")
}

func TestAdviseCleanPlan(t *testing.T) {
	plan := []PlanRow{
		{AccessType: "Index Scan", Relation: "players", Extra: "Index: idx_players_team"},
		{AccessType: "Limit"},
	}
	assert.Empty(t, Advise(plan))
}

func TestStaticAdvice(t *testing.T) {
	assert.NotEmpty(t, StaticAdvice(OpUpdate))
	assert.NotEmpty(t, StaticAdvice(OpDropTable))
	assert.Empty(t, StaticAdvice(OpSelect))
	assert.Empty(t, StaticAdvice(OpUnknown))
}

func TestFlattenPlan(t *testing.T) {
	planJSON := `[
	  {
	    "Plan": {
	      "Node Type": "Sort",
	      "Sort Key": ["players.runs DESC"],
	      "Plans": [
	        {
	          "Node Type": "Seq Scan",
	          "Relation Name": "players",
	          "Filter": "(team_id = 3)"
	        }
	      ]
	    }
	  }
	]`
	rows, err := FlattenPlan(planJSON)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Sort", rows[0].AccessType)
	assert.Contains(t, rows[0].Extra, "Sort Key: players.runs DESC")
	assert.Equal(t, "Seq Scan", rows[1].AccessType)
	assert.Equal(t, "players", rows[1].Relation)
	assert.Contains(t, rows[1].Extra, "Filter: (team_id = 3)")

	findings := Advise(rows)
	require.Len(t, findings, 2)
	assert.Contains(t, findings[0], "ORDER BY")
	assert.Contains(t, findings[1], "index")
}

func TestFlattenPlanBadJSON(t *testing.T) {
	_, err := FlattenPlan("not json")
	assert.Error(t, err)
}
