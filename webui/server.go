package webui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/hi345slim/c99scan/ast"
)

//go:embed templates
var templatesFS embed.FS

// Server serves the paste-and-scan web UI over HTTP.
type Server struct {
	jobs      *Jobs
	templates *template.Template
	mux       *http.ServeMux
}

// NewServer parses the embedded templates and wires up routes.
func NewServer() (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		jobs:      NewJobs(),
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", nil)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}

	src := r.FormValue("source")
	if src == "" {
		http.Error(w, "must provide source", http.StatusBadRequest)
		return
	}

	id := s.jobs.Submit(src)
	http.Redirect(w, r, "/jobs/"+id, http.StatusSeeOther)
}

// jobView adapts a Result for template rendering, since templates cannot
// call the ast package's printer directly.
type jobView struct {
	*Result
	TreeText string
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.jobs.Get(id)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	view := jobView{Result: result}
	if result.Tree != nil {
		view.TreeText = ast.String(result.Tree)
	}
	s.render(w, "result.html", view)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}
