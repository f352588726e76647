package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretStatusLineCaseInsensitive(t *testing.T) {
	variants := []string{
		"Status: VALID",
		"status: valid",
		"STATUS: Valid",
		"  sTaTuS:   VALID  ",
	}
	for _, raw := range variants {
		out := Interpret(raw)
		assert.Equal(t, StatusAccepted, out.Status, "input %q", raw)
	}
}

func TestInterpretStructuredReply(t *testing.T) {
	raw := `Reasoning: the request asks for players which exist in the schema.
Status: VALID
Error:`
	out := Interpret(raw)
	assert.Equal(t, StatusAccepted, out.Status)
	assert.Empty(t, out.Detail)
}

func TestInterpretInvalidEntityWithDetail(t *testing.T) {
	raw := `Reasoning: the column home_ground does not exist.
Status: INVALID_ENTITY
Error: column home_ground is not in the schema`
	out := Interpret(raw)
	assert.Equal(t, StatusInvalidEntity, out.Status)
	assert.Equal(t, "column home_ground is not in the schema", out.Detail)
}

func TestInterpretPlaceholderErrorTokensIgnored(t *testing.T) {
	for _, token := range []string{"none", "None", "EMPTY", "N/A", ""} {
		raw := "Status: VALID\nError: " + token
		out := Interpret(raw)
		assert.Empty(t, out.Detail, "token %q", token)
	}
}

func TestInterpretStatusInvalidNormalized(t *testing.T) {
	out := Interpret("Status: INVALID")
	assert.Equal(t, StatusInvalidEntity, out.Status)
}

func TestInterpretFallbackScan(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{"invalid entity token in prose", "The request references a missing table. INVALID_ENTITY.", StatusInvalidEntity},
		{"invalid entity with space", "Verdict is INVALID ENTITY here", StatusInvalidEntity},
		{"irrelevant token in prose", "This question is IRRELEVANT to the database.", StatusIrrelevant},
		{"bare valid token without status line", "The request looks VALID to me.", StatusAccepted},
		{"rejection token wins over status line", "Status: VALID\nbut actually the table is missing: INVALID_ENTITY", StatusInvalidEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Interpret(tc.raw).Status)
		})
	}
}

func TestInterpretUnrecognizedDefaultsToRejection(t *testing.T) {
	for _, raw := range []string{
		"",
		"I'm not sure what you mean.",
		"Status: MAYBE",
		"The answer is 42.",
	} {
		out := Interpret(raw)
		assert.NotEqual(t, StatusAccepted, out.Status, "input %q must not be accepted", raw)
	}
}
