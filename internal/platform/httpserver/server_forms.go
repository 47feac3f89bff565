package httpserver

import (
	"net/http"

	formshttp "taskhall/contexts/submission-core/form-registry-service/transport/http"
)

func (s *Server) handleCurrentFormConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.forms.Handler.CurrentFormConfigHandler(r.Context(), r.PathValue("kind"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetFormConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.forms.Handler.GetFormConfigHandler(r.Context(), r.PathValue("config_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidatePayload(w http.ResponseWriter, r *http.Request) {
	var req formshttp.ValidatePayloadRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.forms.Handler.ValidatePayloadHandler(r.Context(), req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListFormConfigs(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.forms.Handler.ListFormConfigsHandler(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishFormConfig(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	var req formshttp.PublishFormConfigRequest
	if problems := decodeRequest(r, &req); len(problems) > 0 {
		writeInvalidRequest(w, problems)
		return
	}
	resp, err := s.forms.Handler.PublishFormConfigHandler(r.Context(), adminID, req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleActivateFormConfig(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.forms.Handler.ActivateFormConfigHandler(r.Context(), adminID, r.PathValue("config_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateFormConfig(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.forms.Handler.DeactivateFormConfigHandler(r.Context(), adminID, r.PathValue("config_id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
