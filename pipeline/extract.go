// extract.go pulls a single SQL statement out of noisy generated text.
//
// Models wrap statements in markdown fences and commentary, and an
// INSERT can carry a nested SELECT in its value-producing clause, so
// the shape matchers run in a fixed priority order: compound and outer
// statements before the bare SELECT that could match their inner
// fragments.
package pipeline

import (
	"regexp"
	"strings"
)

// fenceRe strips an enclosing ```sql fenced block (or a plain fence).
var fenceRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")

// statementPatterns are tried in order; each matches from its keyword
// up to the first statement terminator. WITH and INSERT come first so
// a SELECT nested inside them never wins; CREATE TABLE precedes SELECT
// for the same reason (CREATE TABLE ... AS SELECT). Bare SELECT is the
// last resort.
var statementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)\bWITH\s.*?;`),
	regexp.MustCompile(`(?is)\bINSERT\s+INTO\s.*?;`),
	regexp.MustCompile(`(?is)\bUPDATE\s.*?;`),
	regexp.MustCompile(`(?is)\bDELETE\s+FROM\s.*?;`),
	regexp.MustCompile(`(?is)\bCREATE\s+TABLE\s.*?;`),
	regexp.MustCompile(`(?is)\bCREATE\s+(?:UNIQUE\s+)?INDEX\s.*?;`),
	regexp.MustCompile(`(?is)\bALTER\s+TABLE\s.*?;`),
	regexp.MustCompile(`(?is)\bDROP\s+TABLE\s.*?;`),
	regexp.MustCompile(`(?is)\bDROP\s+INDEX\s.*?;`),
	regexp.MustCompile(`(?is)\bTRUNCATE\s+TABLE\s.*?;`),
	regexp.MustCompile(`(?is)\bCREATE\s+(?:DATABASE|SCHEMA)\s.*?;`),
	regexp.MustCompile(`(?is)\bDROP\s+(?:DATABASE|SCHEMA)\s.*?;`),
	regexp.MustCompile(`(?is)\bSELECT\s.*?;`),
}

// Extract returns the first statement found by the priority-ordered
// matchers. If nothing matches, the fence-stripped text is returned
// verbatim and left for the sanity check to reject.
func Extract(raw string) string {
	working := raw
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		working = m[1]
	}
	working = strings.TrimSpace(working)

	for _, re := range statementPatterns {
		if match := re.FindString(working); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return working
}
