package pipeline

import (
	"context"
	"strings"

	"github.com/queryforge/queryforge/ai"
	"github.com/queryforge/queryforge/applog"
	"github.com/queryforge/queryforge/db"
)

// Gateway is the reasoning-engine entry point the stages call through.
// In production this is the ai.Chain; tests substitute stubs.
type Gateway interface {
	Complete(ctx context.Context, messages []ai.Message) (string, error)
}

// SchemaSource provides the ordered schema snapshot for a run.
type SchemaSource interface {
	Snapshot(ctx context.Context, schema string) (db.Snapshot, error)
}

// DataProbe samples row counts for the feasibility stage.
type DataProbe interface {
	SampleCount(ctx context.Context, schema, table string, limit int) (int, error)
}

// Pipeline wires the stages to their collaborators. It holds no
// per-run state and is safe for concurrent use.
type Pipeline struct {
	gateway Gateway
	schemas SchemaSource
	probe   DataProbe
}

// New creates a pipeline.
func New(gateway Gateway, schemas SchemaSource, probe DataProbe) *Pipeline {
	return &Pipeline{gateway: gateway, schemas: schemas, probe: probe}
}

// next is the pure transition function over (state, outcome).
func next(s State, out Outcome) State {
	switch s {
	case StateRefine:
		return StateValidate
	case StateValidate:
		if out.Status == StatusAccepted {
			return StateGenerate
		}
		return StateError
	case StateGenerate:
		if out.Status == StatusAccepted {
			return StateDone
		}
		return StateError
	default:
		return s
	}
}

// Run executes the full pipeline for one request. All failures come
// back inside the Context (terminal state plus error detail); nothing
// is thrown past this boundary.
func (p *Pipeline) Run(ctx context.Context, request, schema string) *Context {
	rc := &Context{Request: request, Schema: schema, State: StateRefine}
	applog.Event("PIPELINE", "run start schema=%s request=%q", schema, request)

	snap, err := p.schemas.Snapshot(ctx, schema)
	if err != nil {
		applog.Error("schema snapshot: %v", err)
		rc.fail("could not read the database schema")
		return rc
	}
	rc.Snapshot = snap

	for rc.State != StateDone && rc.State != StateError {
		var out Outcome
		var err error

		switch rc.State {
		case StateRefine:
			out, err = p.refine(ctx, rc)
		case StateValidate:
			out, err = p.validate(ctx, rc)
		case StateGenerate:
			out, err = p.generate(ctx, rc)
		}

		if err != nil {
			// Provider exhaustion (or any other hard stage fault) is
			// surfaced generically; the raw cause goes to the log.
			applog.Error("stage %s: %v", rc.State, err)
			rc.fail(stageFailureDetail(rc.State))
			break
		}

		if rc.State == StateValidate && out.Status == StatusAccepted {
			rc.Feasible = true
		}
		if out.Status != StatusAccepted {
			rc.ErrDetail = out.Detail
		}
		rc.State = next(rc.State, out)
	}

	applog.Event("PIPELINE", "run end state=%s feasible=%t", rc.State, rc.Feasible)
	return rc
}

// refine rewrites the request into canonical phrasing. The raw reply
// becomes the refined request verbatim; no interpretation happens here.
func (p *Pipeline) refine(ctx context.Context, rc *Context) (Outcome, error) {
	text, err := p.gateway.Complete(ctx, refineMessages(rc.Request))
	if err != nil {
		return Outcome{}, err
	}
	rc.Refined = strings.TrimSpace(text)
	if rc.Refined == "" {
		rc.Refined = rc.Request
	}
	return Outcome{Status: StatusAccepted}, nil
}

// generate asks the engine for a statement, extracts it from the noisy
// reply, and sanity-checks the result before accepting it.
func (p *Pipeline) generate(ctx context.Context, rc *Context) (Outcome, error) {
	text, err := p.gateway.Complete(ctx, generationMessages(rc.Refined, rc.Schema, rc.Snapshot.ContextBlock()))
	if err != nil {
		return Outcome{}, err
	}

	stmt := Extract(text)
	if err := db.SanityCheck(stmt); err != nil {
		return Outcome{
			Status: StatusIrrelevant,
			Detail: "generated statement failed validation: " + err.Error(),
		}, nil
	}

	rc.Statement = stmt
	return Outcome{Status: StatusAccepted}, nil
}

func stageFailureDetail(s State) string {
	switch s {
	case StateGenerate:
		return "failed to generate a SQL statement, please try rephrasing your request"
	default:
		return "failed to validate the request, please try again"
	}
}
