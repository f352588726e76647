package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/queryforge/queryforge/applog"
)

// sampleLimit caps how many rows a data probe counts per table.
const sampleLimit = 5

// insertTargetRe pulls the target table out of refined phrasings like
// "insert a new match into match_data".
var insertTargetRe = regexp.MustCompile(`(?i)\binsert\b.*?\binto\s+([A-Za-z_][A-Za-z0-9_]*)`)

// validate is the feasibility stage: does the refined request make
// sense against the live schema, and for data-dependent inserts, is
// there data to reference?
func (p *Pipeline) validate(ctx context.Context, rc *Context) (Outcome, error) {
	// Unsatisfiable without an engine round trip: nothing exists and
	// the request is not asking to create a database or schema.
	if rc.Snapshot.Empty() && !isSchemaCreation(rc.Refined) {
		return Outcome{
			Status: StatusIrrelevant,
			Detail: fmt.Sprintf("I cannot answer this. No schema found for %q.", rc.Schema),
		}, nil
	}

	notes := p.dataNotes(ctx, rc)

	reply, err := p.gateway.Complete(ctx, validationMessages(rc.Refined, rc.Schema, rc.Snapshot.ContextBlock(), notes))
	if err != nil {
		return Outcome{}, err
	}

	out := Interpret(reply)
	switch out.Status {
	case StatusIrrelevant:
		out.Detail = "I cannot answer this. " + orDefault(out.Detail, "The request is unrelated to the database.")
	case StatusInvalidEntity:
		out.Detail = "I cannot generate SQL. " + orDefault(out.Detail, "The requested entity is missing from the schema.")
	}
	return out, nil
}

// dataNotes probes row counts for insert requests. When the refined
// request inserts into a table, every *other* table gets a capped
// count so the engine can tell "parent table has rows" from "the data
// the insert depends on does not exist".
func (p *Pipeline) dataNotes(ctx context.Context, rc *Context) string {
	if !strings.Contains(strings.ToLower(rc.Refined), "insert") {
		return ""
	}
	m := insertTargetRe.FindStringSubmatch(rc.Refined)
	if m == nil {
		return ""
	}
	target := m[1]

	var lines []string
	for _, t := range rc.Snapshot.Tables {
		if strings.EqualFold(t.Name, target) {
			continue
		}
		n, err := p.probe.SampleCount(ctx, rc.Schema, t.Name, sampleLimit)
		if err != nil {
			applog.Error("data probe %s.%s: %v", rc.Schema, t.Name, err)
			continue
		}
		if n > 0 {
			lines = append(lines, fmt.Sprintf("- %s: data available (%d+ rows)", t.Name, n))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: no data (inserts that reference it will have nothing to point at)", t.Name))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "Available data in other tables:\n" + strings.Join(lines, "\n")
}

// isSchemaCreation reports whether the refined request asks to create
// a database or schema, which is legitimate even when nothing exists yet.
func isSchemaCreation(refined string) bool {
	lower := strings.ToLower(refined)
	return strings.Contains(lower, "create database") || strings.Contains(lower, "create schema")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
