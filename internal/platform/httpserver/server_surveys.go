package httpserver

import (
	"net/http"

	surveyhttp "taskhall/contexts/submission-core/survey-service/transport/http"
)

func (s *Server) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req surveyhttp.SubmitSurveyRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.surveys.Handler.SubmitSurveyHandler(r.Context(), userID, resolveClientIP(r), r.UserAgent(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMySurveySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	resp, err := s.surveys.Handler.ListMySubmissionsHandler(r.Context(), userID, page, limit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSurveySubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.surveys.Handler.GetSubmissionHandler(r.Context(), userID, r.PathValue("submission_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListConfigSurveySubmissions(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	resp, err := s.surveys.Handler.ListConfigSubmissionsHandler(
		r.Context(),
		adminID,
		r.URL.Query().Get("config_id"),
		page,
		limit,
	)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func pageParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	page, ok := queryInt(r, "page")
	if !ok {
		writeInvalidRequest(w, []string{"page must be an integer"})
		return 0, 0, false
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalidRequest(w, []string{"limit must be an integer"})
		return 0, 0, false
	}
	return page, limit, true
}
