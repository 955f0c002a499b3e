package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/nakamasato/xot/internal/chart"
	"github.com/nakamasato/xot/internal/logging"
	"github.com/nakamasato/xot/internal/reasoner"
	"github.com/nakamasato/xot/internal/thought"
	"github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Server struct {
	router   *mux.Router
	reasoner *reasoner.Reasoner

	mu   sync.RWMutex
	last *reasoner.Result
}

type GenerateRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode"`
}

type ModeInfo struct {
	Mode thought.Mode `json:"mode"`
	Name string       `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(r *reasoner.Reasoner) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		reasoner: r,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(logRequests)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.router.HandleFunc("/api/generate", s.handleGenerate).Methods(http.MethodPost)
	s.router.HandleFunc("/api/result", s.handleResult).Methods(http.MethodGet)
	s.router.HandleFunc("/api/result/nodes/{id}", s.handleNode).Methods(http.MethodGet)
	s.router.HandleFunc("/api/result/page", s.handleResultPage).Methods(http.MethodGet)
	s.router.HandleFunc("/api/modes", s.handleModes).Methods(http.MethodGet)
	s.router.HandleFunc("/api/schema", s.handleSchema).Methods(http.MethodGet)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("xot server running on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Logger.Info("shutting down xot server")
		return srv.Shutdown(shutdownCtx)
	}
}

// Last returns the most recent result, if any.
func (s *Server) Last() *reasoner.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Server) setLast(r *reasoner.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

func modes() []ModeInfo {
	out := make([]ModeInfo, len(thought.Modes))
	for i, m := range thought.Modes {
		out[i] = ModeInfo{Mode: m, Name: m.DisplayName()}
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Modes     []ModeInfo
		PlotlyURL string
	}{modes(), chart.PlotlyURL}
	if err := indexTemplate.Execute(w, data); err != nil {
		logging.Logger.Errorf("failed to render index: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	mode, err := thought.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.reasoner.Run(r.Context(), mode, req.Question)
	switch {
	case errors.Is(err, reasoner.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logging.Logger.WithError(err).Error("failed to generate result")
		writeError(w, http.StatusBadGateway, "An error occurred: "+err.Error())
		return
	}

	s.setLast(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	last := s.Last()
	if last == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	last := s.Last()
	if last == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	id := mux.Vars(r)["id"]
	node, ok := last.NodeDetail(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown node: "+id)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleResultPage(w http.ResponseWriter, r *http.Request) {
	last := s.Last()
	if last == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.WriteHTML(w, last.Page()); err != nil {
		logging.Logger.Errorf("failed to render result page: %v", err)
	}
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modes())
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reasoner.ResultSchema.Schema)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("handled request")
	})
}
