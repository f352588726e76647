// interpret.go turns a model's free-text reply into a structured
// outcome. The model is asked for "Status:" and "Error:" lines but
// routinely drifts from that shape, so interpretation happens in two
// explicit passes: a strict line parse first, then a whole-text
// keyword scan. Anything unrecognizable is rejected rather than
// accepted; a response we cannot read must never pass validation.
package pipeline

import (
	"strings"
)

// Status is the normalized verdict extracted from an engine reply.
type Status int

const (
	StatusAccepted Status = iota
	StatusIrrelevant
	StatusInvalidEntity
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "ACCEPTED"
	case StatusIrrelevant:
		return "REJECTED_IRRELEVANT"
	case StatusInvalidEntity:
		return "REJECTED_INVALID_ENTITY"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the structured result of interpreting one engine reply.
type Outcome struct {
	Status Status
	Detail string
}

// placeholderTokens are "Error:" values that mean "no error".
var placeholderTokens = map[string]bool{
	"":      true,
	"none":  true,
	"empty": true,
	"n/a":   true,
}

// Interpret parses a free-text engine reply into an Outcome.
//
// Pass 1 scans lines for "status:" and "error:" prefixes, case
// insensitively, keeping the first non-empty status value and the
// first error value that is not a placeholder token.
//
// Pass 2 scans the whole uppercased text for rejection tokens, which
// win over whatever the status line said; the bare VALID token is only
// honored when pass 1 found no status line at all.
func Interpret(raw string) Outcome {
	statusVal, detail := scanLines(raw)

	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "INVALID_ENTITY"), strings.Contains(upper, "INVALID ENTITY"):
		return Outcome{Status: StatusInvalidEntity, Detail: detail}
	case strings.Contains(upper, "IRRELEVANT"):
		return Outcome{Status: StatusIrrelevant, Detail: detail}
	}

	if statusVal != "" {
		return Outcome{Status: normalizeStatus(statusVal), Detail: detail}
	}

	if strings.Contains(upper, "VALID") {
		return Outcome{Status: StatusAccepted, Detail: detail}
	}

	return Outcome{Status: StatusIrrelevant, Detail: detail}
}

// scanLines is the strict pass: first non-empty "status:" value and
// first non-placeholder "error:" value, matched case-insensitively.
func scanLines(raw string) (statusVal, detail string) {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if statusVal == "" && strings.HasPrefix(lower, "status:") {
			statusVal = strings.TrimSpace(trimmed[len("status:"):])
		}
		if detail == "" && strings.HasPrefix(lower, "error:") {
			v := strings.TrimSpace(trimmed[len("error:"):])
			if !placeholderTokens[strings.ToLower(v)] {
				detail = v
			}
		}
	}
	return statusVal, detail
}

// normalizeStatus maps a raw status-line value onto a Status. INVALID
// is checked before VALID because the former contains the latter.
func normalizeStatus(v string) Status {
	v = strings.ToUpper(v)
	switch {
	case strings.Contains(v, "INVALID"):
		return StatusInvalidEntity
	case strings.Contains(v, "VALID"), strings.Contains(v, "ACCEPT"):
		return StatusAccepted
	default:
		return StatusIrrelevant
	}
}
