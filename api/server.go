// Package api is the thin HTTP boundary over the pipeline and the
// executor. Handlers translate JSON in and out; all decisions happen
// in the pipeline and db packages.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/queryforge/queryforge/db"
	"github.com/queryforge/queryforge/pipeline"
)

// Generator runs the NL-to-SQL pipeline. Satisfied by *pipeline.Pipeline.
type Generator interface {
	Run(ctx context.Context, request, schema string) *pipeline.Context
}

// Executor runs a finished statement. Satisfied by *db.DB.
type Executor interface {
	Run(ctx context.Context, stmt, schema string) (*db.Result, error)
}

// Catalog exposes the schema listing endpoints. Satisfied by *db.DB.
type Catalog interface {
	ListSchemas(ctx context.Context) ([]db.SchemaInfo, error)
	Snapshot(ctx context.Context, schema string) (db.Snapshot, error)
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	gen     Generator
	exec    Executor
	catalog Catalog
	log     *slog.Logger
}

// NewServer creates the HTTP boundary.
func NewServer(gen Generator, exec Executor, catalog Catalog, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{gen: gen, exec: exec, catalog: catalog, log: log}
}

// Router builds the chi router with all API routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/execute", s.handleExecute)
		r.Get("/schemas", s.handleListSchemas)
		r.Get("/schemas/{name}", s.handleSchema)
	})
	return r
}

type queryRequest struct {
	Query  string `json:"query"`
	Schema string `json:"schema,omitempty"`
}

type generateResponse struct {
	SQLQuery      string `json:"sql_query,omitempty"`
	OperationType string `json:"operation_type,omitempty"`
	RefinedQuery  string `json:"refined_query,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query cannot be empty")
		return
	}

	rc := s.gen.Run(r.Context(), req.Query, req.Schema)
	if rc.Failed() {
		s.log.Info("generation rejected", "schema", req.Schema, "detail", rc.ErrDetail)
		writeJSON(w, http.StatusOK, generateResponse{
			RefinedQuery: rc.Refined,
			Error:        rc.ErrDetail,
		})
		return
	}

	s.log.Info("generated statement", "schema", req.Schema, "operation", string(db.Classify(rc.Statement)))
	writeJSON(w, http.StatusOK, generateResponse{
		SQLQuery:      rc.Statement,
		OperationType: string(db.Classify(rc.Statement)),
		RefinedQuery:  rc.Refined,
	})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "SQL query cannot be empty")
		return
	}

	if err := db.SanityCheck(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.exec.Run(r.Context(), req.Query, req.Schema)
	if err != nil {
		var fault *db.ExecutionFault
		if errors.As(err, &fault) {
			s.log.Warn("execution fault", "error", fault.Err)
			writeError(w, http.StatusUnprocessableEntity, fault.Err.Error())
			return
		}
		s.log.Error("execute failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error executing query")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	infos, err := s.catalog.ListSchemas(r.Context())
	if err != nil {
		s.log.Error("list schemas failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error fetching schemas")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"schemas":     infos,
		"total_count": len(infos),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	snap, err := s.catalog.Snapshot(r.Context(), name)
	if err != nil {
		s.log.Error("schema snapshot failed", "schema", name, "error", err)
		writeError(w, http.StatusInternalServerError, "error fetching schema")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
