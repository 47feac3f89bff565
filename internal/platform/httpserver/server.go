package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	formregistryservice "taskhall/contexts/submission-core/form-registry-service"
	surveyservice "taskhall/contexts/submission-core/survey-service"
	taskclaimservice "taskhall/contexts/submission-core/task-claim-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "taskhall/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	http    *http.Server
	logger  *slog.Logger
	addr    string
	forms   formregistryservice.Module
	surveys surveyservice.Module
	tasks   taskclaimservice.Module
}

func New(
	forms formregistryservice.Module,
	surveys surveyservice.Module,
	tasks taskclaimservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		forms:   forms,
		surveys: surveys,
		tasks:   tasks,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /v1/forms/kinds/{kind}/current", s.handleCurrentFormConfig)
	s.mux.HandleFunc("GET /v1/forms/configs/{config_id}", s.handleGetFormConfig)
	s.mux.HandleFunc("POST /v1/forms/validate", s.handleValidatePayload)
	s.mux.HandleFunc("GET /v1/admin/forms", s.handleListFormConfigs)
	s.mux.HandleFunc("POST /v1/admin/forms", s.handlePublishFormConfig)
	s.mux.HandleFunc("POST /v1/admin/forms/{config_id}/activate", s.handleActivateFormConfig)
	s.mux.HandleFunc("POST /v1/admin/forms/{config_id}/deactivate", s.handleDeactivateFormConfig)

	s.mux.HandleFunc("POST /v1/surveys/submissions", s.handleSubmitSurvey)
	s.mux.HandleFunc("GET /v1/surveys/submissions", s.handleListMySurveySubmissions)
	s.mux.HandleFunc("GET /v1/surveys/submissions/{submission_id}", s.handleGetSurveySubmission)
	s.mux.HandleFunc("GET /v1/admin/surveys/submissions", s.handleListConfigSurveySubmissions)

	s.mux.HandleFunc("GET /v1/tasks", s.handleListTasks)
	s.mux.HandleFunc("GET /v1/tasks/{task_id}", s.handleGetTask)
	s.mux.HandleFunc("POST /v1/tasks/{task_id}/claim", s.handleClaimTask)
	s.mux.HandleFunc("GET /v1/claims", s.handleListClaims)
	s.mux.HandleFunc("GET /v1/claims/stats", s.handleUserStats)
	s.mux.HandleFunc("GET /v1/claims/{claim_id}", s.handleGetClaim)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/submit", s.handleSubmitClaim)
	s.mux.HandleFunc("POST /v1/claims/{claim_id}/cancel", s.handleCancelClaim)
	s.mux.HandleFunc("POST /v1/admin/tasks", s.handleCreateTask)
	s.mux.HandleFunc("PATCH /v1/admin/tasks/{task_id}", s.handleUpdateTask)
	s.mux.HandleFunc("POST /v1/admin/tasks/{task_id}/status", s.handleChangeTaskStatus)
	s.mux.HandleFunc("GET /v1/admin/submissions", s.handleReviewQueue)
	s.mux.HandleFunc("GET /v1/admin/submissions/history", s.handleListSubmissions)
	s.mux.HandleFunc("POST /v1/admin/submissions/{submission_id}/review", s.handleReviewSubmission)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
