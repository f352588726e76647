// Package pipeline turns a natural-language request into a validated,
// executable SQL statement through a fixed sequence of stages:
//
//	REFINE → VALIDATE → GENERATE → DONE
//	              ↘         ↘
//	                 ERROR
//
// Each run owns a mutable Context that the stages thread through;
// nothing is shared between concurrent runs. Stages run strictly
// sequentially and a run never revisits a prior state.
package pipeline

import (
	"github.com/queryforge/queryforge/db"
)

// State identifies the pipeline stage a run is in.
type State int

const (
	StateRefine State = iota
	StateValidate
	StateGenerate
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateRefine:
		return "REFINE"
	case StateValidate:
		return "VALIDATE"
	case StateGenerate:
		return "GENERATE"
	case StateDone:
		return "DONE"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Context is the mutable record threaded through all stages. It is
// created once per request, owned exclusively by that run, and
// discarded after the terminal stage.
type Context struct {
	Request   string      // original request text, never modified
	Refined   string      // set by REFINE
	Schema    string      // target schema identifier
	Snapshot  db.Snapshot // ordered schema view, fetched once per run
	Feasible  bool        // set when VALIDATE accepts
	ErrDetail string      // set on the path to StateError
	Statement string      // set when GENERATE succeeds
	State     State
}

// Failed reports whether the run ended in the error state.
func (c *Context) Failed() bool {
	return c.State == StateError
}

func (c *Context) fail(detail string) {
	c.ErrDetail = detail
	c.State = StateError
}
