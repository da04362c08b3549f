// Package web serves the HTTP front end: a form page and a render
// endpoint that turns posted facts into a laid-out image.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"relviz/internal/config"
	"relviz/internal/diagfmt"
	"relviz/internal/driver"
	"relviz/internal/engine"
)

//go:embed index.html
var indexHTML string

type Server struct {
	cfg     *config.Config
	engines *engine.Registry
	mux     *http.ServeMux
}

func New(cfg *config.Config, engines *engine.Registry) *Server {
	s := &Server{
		cfg:     cfg,
		engines: engines,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleForm)
	s.mux.HandleFunc("/render", s.handleRender)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Serve.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleRender accepts form fields facts, engine and format. Every
// request builds its own fact model and graph from scratch; nothing
// is cached across requests.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Serve.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form data", http.StatusBadRequest)
		return
	}

	engineName := r.PostFormValue("engine")
	if engineName == "" {
		engineName = "dot"
	}
	format := r.PostFormValue("format")
	if format == "" {
		format = "svg"
	}
	if _, err := s.engines.Resolve(engineName); err != nil {
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	}

	session := driver.NewSession(0)
	styleFacts, err := session.StyleFacts(s.cfg.Style.Default, s.cfg.Style.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	contentFacts, err := session.ParseText("request", r.PostFormValue("facts"))
	if err != nil {
		s.diagError(w, session)
		return
	}
	// Content facts extend the style classification, so requests can
	// declare their own node and edge types inline.
	styleFacts = append(styleFacts, contentFacts...)

	g, err := session.BuildGraph(styleFacts, contentFacts)
	if err != nil {
		s.diagError(w, session)
		return
	}

	rendered, err := s.engines.Render(r.Context(), engineName, format, []byte(g.String()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Write(rendered)
}

// diagError reports accumulated diagnostics as a 400 response.
func (s *Server) diagError(w http.ResponseWriter, session *driver.Session) {
	session.Bag.Sort()
	var b strings.Builder
	diagfmt.Pretty(&b, session.Bag, session.FileSet, diagfmt.PrettyOpts{})
	http.Error(w, strings.TrimRight(b.String(), "\n"), http.StatusBadRequest)
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "dot", "canon", "plain":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
