// Package server exposes the assessment engine over an HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/assess"
	"github.com/sells-group/shell-assess/internal/exporter"
	"github.com/sells-group/shell-assess/internal/fetcher"
	"github.com/sells-group/shell-assess/internal/model"
	"github.com/sells-group/shell-assess/internal/scorer"
	"github.com/sells-group/shell-assess/internal/store"
	"github.com/sells-group/shell-assess/pkg/salesforce"
)

// Server wires the engine, scorer, store, and Salesforce source behind
// HTTP handlers.
type Server struct {
	engine      *assess.Engine
	scorer      *scorer.Scorer // nil when AI scoring is disabled
	store       store.Store
	source      *fetcher.SalesforceSource // nil when Salesforce is not configured
	concurrency int
}

// Options configures a Server.
type Options struct {
	Engine      *assess.Engine
	Scorer      *scorer.Scorer
	Store       store.Store
	Source      *fetcher.SalesforceSource
	Concurrency int
}

func New(opts Options) *Server {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	return &Server{
		engine:      opts.Engine,
		scorer:      opts.Scorer,
		store:       opts.Store,
		source:      opts.Source,
		concurrency: opts.Concurrency,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api", s.handleAPIIndex)
	r.Get("/account/{id}", s.handleAccount)
	r.Post("/accounts/analyze", s.handleAnalyze)
	r.Post("/accounts/validate", s.handleValidate)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/runs/{id}/export", s.handleExportRun)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAPIIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"endpoints": []string{
			"GET /health",
			"GET /account/{id}",
			"POST /accounts/analyze",
			"POST /accounts/validate",
			"GET /runs",
			"GET /runs/{id}",
			"GET /runs/{id}/export",
		},
	})
}

// handleAccount assesses a single account fetched live from Salesforce.
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "salesforce is not configured")
		return
	}
	id := chi.URLParam(r, "id")
	if !salesforce.IsValidAccountID(id) {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	pairs, err := s.source.Pairs(r.Context(), []string{id})
	if err != nil {
		zap.L().Error("account fetch failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusBadGateway, "account fetch failed")
		return
	}
	if len(pairs) == 0 {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	a := model.Assessment{
		Account: pairs[0].Account,
		Parent:  pairs[0].Parent,
		Flags:   s.engine.Evaluate(pairs[0].Account, pairs[0].Parent),
	}
	if s.scorer != nil {
		ai := s.scorer.Score(r.Context(), a)
		a.AI = &ai
	}
	writeJSON(w, http.StatusOK, a)
}

// analyzeRequest selects the accounts to assess: an explicit ID list or an
// Id-only SOQL query.
type analyzeRequest struct {
	AccountIDs []string `json:"account_ids,omitempty"`
	Query      string   `json:"query,omitempty"`
	SkipAI     bool     `json:"skip_ai,omitempty"`
}

// handleAnalyze starts an asynchronous assessment run and returns its ID.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "salesforce is not configured")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.AccountIDs) == 0 && req.Query == "" {
		writeError(w, http.StatusBadRequest, "account_ids or query is required")
		return
	}
	if req.Query != "" {
		if _, err := salesforce.ValidateIDQuery(req.Query); err != nil {
			writeError(w, http.StatusBadRequest, eris.ToString(err, false))
			return
		}
	}

	source := fmt.Sprintf("%d ids", len(req.AccountIDs))
	if req.Query != "" {
		source = req.Query
	}

	run, err := s.store.CreateRun(r.Context(), source)
	if err != nil {
		zap.L().Error("create run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create run failed")
		return
	}

	go s.executeRun(context.WithoutCancel(r.Context()), run.ID, req)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"run_id": run.ID,
		"status": string(model.RunStatusQueued),
	})
}

// executeRun drives one background assessment run to completion.
func (s *Server) executeRun(ctx context.Context, runID string, req analyzeRequest) {
	fail := func(err error) {
		zap.L().Error("run failed", zap.String("run_id", runID), zap.Error(err))
		if ferr := s.store.FailRun(ctx, runID, eris.ToString(err, false)); ferr != nil {
			zap.L().Error("mark run failed", zap.String("run_id", runID), zap.Error(ferr))
		}
	}

	if err := s.store.UpdateRunStatus(ctx, runID, model.RunStatusRunning); err != nil {
		zap.L().Error("mark run running", zap.String("run_id", runID), zap.Error(err))
	}

	var pairs []assess.Pair
	var err error
	if req.Query != "" {
		pairs, err = s.source.PairsFromQuery(ctx, req.Query)
	} else {
		pairs, err = s.source.Pairs(ctx, req.AccountIDs)
	}
	if err != nil {
		fail(err)
		return
	}

	assessments, err := s.engine.EvaluateBatch(ctx, pairs, s.concurrency)
	if err != nil {
		fail(err)
		return
	}

	if s.scorer != nil && !req.SkipAI {
		for i := range assessments {
			ai := s.scorer.Score(ctx, assessments[i])
			assessments[i].AI = &ai
		}
	}

	if err := s.store.CompleteRun(ctx, runID, assessments); err != nil {
		fail(err)
		return
	}
	zap.L().Info("run complete",
		zap.String("run_id", runID),
		zap.Int("accounts", len(assessments)))
}

// handleValidate checks which of the submitted account IDs exist without
// running an assessment.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "salesforce is not configured")
		return
	}

	var req struct {
		AccountIDs []string `json:"account_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.AccountIDs) == 0 {
		writeError(w, http.StatusBadRequest, "account_ids is required")
		return
	}

	wellFormed, malformed := salesforce.ValidateIDs(req.AccountIDs)

	pairs, err := s.source.Pairs(r.Context(), wellFormed)
	if err != nil {
		zap.L().Error("validate fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "account fetch failed")
		return
	}

	var missing []string
	for _, id := range wellFormed {
		matched := false
		for _, p := range pairs {
			if salesforce.SameID(p.Account.ID, id) {
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, id)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":     len(wellFormed) - len(missing),
		"missing":   missing,
		"malformed": malformed,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
	}
	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}

	// Strip assessment payloads from the listing.
	summaries := make([]model.Run, len(runs))
	for i, run := range runs {
		run.Assessments = nil
		summaries[i] = run
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleExportRun streams a completed run as CSV, or XLSX with ?format=xlsx.
func (s *Server) handleExportRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if run.Status != model.RunStatusComplete {
		writeError(w, http.StatusConflict, "run is not complete")
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "run-"+id+".xlsx"))
		if err := exporter.ExportXLSXWriter(w, run.Assessments); err != nil {
			zap.L().Error("export run failed", zap.String("run_id", id), zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "run-"+id+".csv"))
	if err := exporter.ExportCSV(w, run.Assessments); err != nil {
		zap.L().Error("export run failed", zap.String("run_id", id), zap.Error(err))
	}
}
