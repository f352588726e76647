package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryforge/queryforge/db"
	"github.com/queryforge/queryforge/pipeline"
)

type fakeGenerator struct {
	rc *pipeline.Context
}

func (f *fakeGenerator) Run(ctx context.Context, request, schema string) *pipeline.Context {
	return f.rc
}

type fakeExecutor struct {
	result *db.Result
	err    error
	got    string
}

func (f *fakeExecutor) Run(ctx context.Context, stmt, schema string) (*db.Result, error) {
	f.got = stmt
	return f.result, f.err
}

type fakeCatalog struct {
	infos []db.SchemaInfo
	snap  db.Snapshot
}

func (f *fakeCatalog) ListSchemas(ctx context.Context) ([]db.SchemaInfo, error) {
	return f.infos, nil
}

func (f *fakeCatalog) Snapshot(ctx context.Context, schema string) (db.Snapshot, error) {
	return f.snap, nil
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestGenerateHandler(t *testing.T) {
	gen := &fakeGenerator{rc: &pipeline.Context{
		State:     pipeline.StateDone,
		Refined:   "list all players",
		Statement: "SELECT * FROM players;",
		Feasible:  true,
	}}
	s := NewServer(gen, &fakeExecutor{}, &fakeCatalog{}, nil)

	w := postJSON(t, s.Router(), "/api/generate", map[string]string{"query": "show me the players"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SELECT * FROM players;", resp["sql_query"])
	assert.Equal(t, "SELECT", resp["operation_type"])
	assert.Equal(t, "list all players", resp["refined_query"])
}

func TestGenerateHandlerPipelineRejection(t *testing.T) {
	gen := &fakeGenerator{rc: &pipeline.Context{
		State:     pipeline.StateError,
		ErrDetail: "I cannot answer this. The request is unrelated to the database.",
	}}
	s := NewServer(gen, &fakeExecutor{}, &fakeCatalog{}, nil)

	w := postJSON(t, s.Router(), "/api/generate", map[string]string{"query": "what is the weather"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["sql_query"])
	assert.Contains(t, resp["error"], "I cannot answer this")
}

func TestGenerateHandlerEmptyQuery(t *testing.T) {
	s := NewServer(&fakeGenerator{}, &fakeExecutor{}, &fakeCatalog{}, nil)
	w := postJSON(t, s.Router(), "/api/generate", map[string]string{"query": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteHandler(t *testing.T) {
	exec := &fakeExecutor{result: &db.Result{
		Columns:    []string{"name"},
		Rows:       [][]string{{"Dhoni"}},
		Affected:   1,
		Operation:  db.OpSelect,
		Advisories: []string{`full table scan on "players": consider adding an index`},
	}}
	s := NewServer(&fakeGenerator{}, exec, &fakeCatalog{}, nil)

	w := postJSON(t, s.Router(), "/api/execute", map[string]string{"query": "SELECT name FROM players;"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp db.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, db.OpSelect, resp.Operation)
	require.Len(t, resp.Advisories, 1)
	assert.Contains(t, resp.Advisories[0], "index")
	assert.Equal(t, "SELECT name FROM players;", exec.got)
}

func TestExecuteHandlerRejectsMalformedStatement(t *testing.T) {
	s := NewServer(&fakeGenerator{}, &fakeExecutor{}, &fakeCatalog{}, nil)
	w := postJSON(t, s.Router(), "/api/execute", map[string]string{"query": "not sql at all"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteHandlerSurfacesExecutionFault(t *testing.T) {
	exec := &fakeExecutor{err: &db.ExecutionFault{
		Statement: "DELETE FROM nope;",
		Err:       errors.New(`relation "nope" does not exist`),
	}}
	s := NewServer(&fakeGenerator{}, exec, &fakeCatalog{}, nil)

	w := postJSON(t, s.Router(), "/api/execute", map[string]string{"query": "DELETE FROM nope;"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], `relation "nope" does not exist`)
}

func TestListSchemasHandler(t *testing.T) {
	cat := &fakeCatalog{infos: []db.SchemaInfo{
		{Name: "cricket_info", TableCount: 3, SizeMB: 1.5},
		{Name: "public", TableCount: 0, SizeMB: 0},
	}}
	s := NewServer(&fakeGenerator{}, &fakeExecutor{}, cat, nil)

	req := httptest.NewRequest("GET", "/api/schemas", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Schemas    []db.SchemaInfo `json:"schemas"`
		TotalCount int             `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "cricket_info", resp.Schemas[0].Name)
}

func TestSchemaHandler(t *testing.T) {
	cat := &fakeCatalog{snap: db.Snapshot{
		Schema: "cricket_info",
		Tables: []db.Table{{Name: "players", Columns: []db.Column{
			{Name: "player_id", DataType: "integer", Ordinal: 1},
		}}},
	}}
	s := NewServer(&fakeGenerator{}, &fakeExecutor{}, cat, nil)

	req := httptest.NewRequest("GET", "/api/schemas/cricket_info", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var snap db.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "cricket_info", snap.Schema)
	require.Len(t, snap.Tables, 1)
	assert.Equal(t, "players", snap.Tables[0].Name)
}
