package httpserver

import (
	"net/http"

	taskhttp "taskhall/contexts/submission-core/task-claim-service/transport/http"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalidRequest(w, []string{"limit must be an integer"})
		return
	}
	offset, ok := queryInt(r, "offset")
	if !ok {
		writeInvalidRequest(w, []string{"offset must be an integer"})
		return
	}
	resp, err := s.tasks.Handler.ListTasksHandler(r.Context(), userID, limit, offset)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.GetTaskHandler(r.Context(), userID, r.PathValue("task_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.ClaimTaskHandler(r.Context(), userID, r.PathValue("task_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.ListClaimsHandler(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.UserStatsHandler(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.GetClaimHandler(r.Context(), userID, r.PathValue("claim_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req taskhttp.SubmitClaimRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.tasks.Handler.SubmitClaimHandler(r.Context(), userID, r.PathValue("claim_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.tasks.Handler.CancelClaimHandler(r.Context(), userID, r.PathValue("claim_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var req taskhttp.CreateTaskRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.tasks.Handler.CreateTaskHandler(r.Context(), adminID, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var req taskhttp.ChangeTaskStatusRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.tasks.Handler.ChangeTaskStatusHandler(r.Context(), adminID, r.PathValue("task_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var req taskhttp.UpdateTaskRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.tasks.Handler.UpdateTaskHandler(r.Context(), adminID, r.PathValue("task_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalidRequest(w, []string{"limit must be an integer"})
		return
	}
	offset, ok := queryInt(r, "offset")
	if !ok {
		writeInvalidRequest(w, []string{"offset must be an integer"})
		return
	}
	query := r.URL.Query()
	resp, err := s.tasks.Handler.ListSubmissionsHandler(r.Context(), query.Get("task_id"), query.Get("status"), limit, offset)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalidRequest(w, []string{"limit must be an integer"})
		return
	}
	resp, err := s.tasks.Handler.ReviewQueueHandler(r.Context(), limit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var req taskhttp.ReviewSubmissionRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.tasks.Handler.ReviewSubmissionHandler(r.Context(), adminID, r.PathValue("submission_id"), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
