// Package server exposes a planned mission over HTTP for local viewers.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/pkg/plan"
)

// Runner executes the planning pipeline and returns the resulting document.
type Runner func() (*plan.Document, error)

// Server is the local viewer server for a planned mission.
type Server struct {
	projectPath string
	port        int
	run         Runner
	log         logging.Logger

	mu  sync.RWMutex
	doc *plan.Document
}

// New creates a server for the given project file. The runner re-executes the
// planning pipeline; the served document is replaced only when a run succeeds.
func New(projectPath string, port int, run Runner, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		run:         run,
		log:         log,
	}
}

// Start runs the pipeline once and then serves the document until the
// process is stopped. A failing initial run aborts startup.
func (s *Server) Start() error {
	if _, err := s.Refresh(); err != nil {
		return fmt.Errorf("initial plan: %w", err)
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("viewer server starting",
		logging.String("addr", "http://localhost"+addr),
		logging.String("project", s.projectPath))

	return http.ListenAndServe(addr, s.Handler())
}

// Refresh re-runs the planning pipeline and swaps the served document.
// On failure the previous document stays in place.
func (s *Server) Refresh() (*plan.Document, error) {
	doc, err := s.run()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return doc, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/plan", s.handlePlan)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("POST /api/plan/refresh", s.handleRefresh)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

func (s *Server) document() *plan.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>BridgePlanner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>BridgePlanner</h1>
<p>Viewer not yet embedded. The plan document is at <code>/api/plan</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	doc := s.document()
	if doc == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no plan available"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	doc := s.document()
	if doc == nil || doc.Validation == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no validation report available"})
		return
	}
	writeJSON(w, http.StatusOK, doc.Validation)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(s.projectPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.Refresh()
	if err != nil {
		s.log.Error("plan refresh failed", logging.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
