// Package ui serves a small web front end and JSON API for solving
// equation systems.
package ui

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dhamidi/eqsolve/analysis"
	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("eqsolve.ui")

type Config struct {
	Strict   bool
	MaxBytes int64
	Format   format.Options
}

type Server struct {
	config     Config
	staticFS   fs.FS
	templateFS fs.FS
	router     chi.Router
}

func NewServer(cfg Config) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := parseTemplates(templateFS); err != nil {
		return nil, err
	}

	s := &Server{
		config:     cfg,
		staticFS:   staticFS,
		templateFS: templateFS,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/", s.handleIndex)
	r.Post("/solve", s.handleSolve)
	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", s.handleAPISolve)
		r.Get("/grammar", s.handleGrammar)
	})
	s.router = r

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Debugf("shutting down %s", addr)
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"value": func(opts format.Options, v float64) string {
			return opts.Value(v)
		},
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// render parses templates on each request so files under ui/templates
// override the embedded copies while developing.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, err := parseTemplates(s.templateFS)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

type pageData struct {
	Input     string
	Formatted string
	Report    *analysis.Report
	Format    format.Options
	Error     string
	Kind      analysis.Kind
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", pageData{Format: s.config.Format})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}

	input := r.FormValue("system")
	report := analysis.Run([]byte(input), analysis.Options{Strict: s.config.Strict})
	data := pageData{
		Input:  input,
		Report: report,
		Format: s.config.Format,
	}
	status := http.StatusOK
	if report.Err != nil {
		data.Error = report.Err.Error()
		data.Kind = report.Kind
		status = http.StatusUnprocessableEntity
	}
	if report.System != nil {
		data.Formatted = format.Render(report.System)
	}
	s.render(w, status, "index.html", data)
}

type solveRequest struct {
	System string `json:"system"`
	Strict *bool  `json:"strict,omitempty"`
}

type solveResponse struct {
	System      string             `json:"system"`
	Variables   []string           `json:"variables"`
	Solution    map[string]float64 `json:"solution"`
	Approximate bool               `json:"approximate"`
	Rank        int                `json:"rank"`
}

type errorResponse struct {
	Error  string        `json:"error"`
	Kind   analysis.Kind `json:"kind"`
	Line   int           `json:"line,omitempty"`
	Column int           `json:"column,omitempty"`
}

// handleAPISolve accepts either a JSON body {"system": "..."} or the raw
// equation text.
func (s *Server) handleAPISolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBytes()))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Error: err.Error(), Kind: analysis.KindInput})
		return
	}

	req := solveRequest{System: string(body)}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		req = solveRequest{}
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error(), Kind: analysis.KindInput})
			return
		}
	}
	strict := s.config.Strict
	if req.Strict != nil {
		strict = *req.Strict
	}

	report := analysis.Run([]byte(req.System), analysis.Options{Strict: strict})
	if report.Err != nil {
		resp := errorResponse{Error: report.Err.Error(), Kind: report.Kind}
		if pos, ok := analysis.Position(report.Err); ok {
			resp.Line = pos.Line
			resp.Column = pos.Column
		}
		log.Debugf("solve rejected (%s): %s", report.Kind, report.Err)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	res := report.Result
	writeJSON(w, http.StatusOK, solveResponse{
		System:      format.Render(report.System),
		Variables:   res.Variables,
		Solution:    res.Values,
		Approximate: res.Approximate,
		Rank:        res.Rank,
	})
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(parser.GrammarSource())
}

func (s *Server) maxBytes() int64 {
	if s.config.MaxBytes > 0 {
		return s.config.MaxBytes
	}
	return 1 << 20
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
