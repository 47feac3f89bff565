package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	formregistryservice "taskhall/contexts/submission-core/form-registry-service"
	surveyservice "taskhall/contexts/submission-core/survey-service"
	taskclaimservice "taskhall/contexts/submission-core/task-claim-service"
)

const surveyConfig = `{
	"activate": true,
	"config": {
		"kind": "survey",
		"title": "Participant profile",
		"fields": [
			{"name": "age", "kind": "number", "label": "Age", "required": true, "constraints": {"min": 18}},
			{"name": "gender", "kind": "radio", "label": "Gender", "required": true,
			 "constraints": {"options": [{"value": "female"}, {"value": "male"}]}},
			{"name": "pregnancy_status", "kind": "select", "label": "Pregnancy status",
			 "constraints": {"options": [{"value": "yes"}, {"value": "no"}]}}
		],
		"conditional_logic": [
			{"condition": "gender == \"female\"", "required_field_names": ["pregnancy_status"]}
		]
	}
}`

const taskConfig = `{
	"activate": true,
	"config": {
		"kind": "task",
		"title": "Share the launch post",
		"fields": [
			{"name": "post_url", "kind": "url", "label": "Post link", "required": true}
		]
	}
}`

func newTestServer() *Server {
	forms := formregistryservice.NewInMemoryModule(nil, slog.Default())
	return New(
		forms,
		surveyservice.NewInMemoryModule(forms.Reader, nil, slog.Default()),
		taskclaimservice.NewInMemoryModule(nil, forms.Reader, nil, 10, slog.Default()),
		slog.Default(),
		":0",
	)
}

type headers map[string]string

func do(t *testing.T, server *Server, method string, path string, body string, h headers) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range h {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v body=%s", err, rr.Body.String())
	}
	return payload
}

func item(t *testing.T, payload map[string]any, key string) map[string]any {
	t.Helper()
	value, ok := payload[key].(map[string]any)
	if !ok {
		t.Fatalf("expected object at %q, got %v", key, payload)
	}
	return value
}

var admin = headers{"X-Admin-Id": "admin-1"}

func TestSurveySubmissionOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := do(t, server, http.MethodPost, "/v1/admin/forms", surveyConfig, admin)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	configID := item(t, decode(t, rr), "item")["id"].(string)

	rr = do(t, server, http.MethodGet, "/v1/forms/kinds/survey/current", "", nil)
	if rr.Code != http.StatusOK || item(t, decode(t, rr), "item")["id"] != configID {
		t.Fatalf("expected active survey %s, got %d body=%s", configID, rr.Code, rr.Body.String())
	}

	user := headers{"X-User-Id": "user-1", "User-Agent": "survey-client/1.0", "X-Forwarded-For": "203.0.113.9, 10.0.0.1"}

	rr = do(t, server, http.MethodPost, "/v1/surveys/submissions",
		`{"form_config_id":"stale","data":{"age":30,"gender":"male"}}`, user)
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "FORM_CONFIG_STALE" {
		t.Fatalf("expected 409 FORM_CONFIG_STALE, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodPost, "/v1/surveys/submissions",
		`{"form_config_id":"`+configID+`","data":{"age":16,"gender":"female"}}`, user)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := decode(t, rr)
	if payload["code"] != "VALIDATION_FAILED" || len(payload["errors"].([]any)) != 2 {
		t.Fatalf("expected both validation errors, got %v", payload)
	}

	rr = do(t, server, http.MethodPost, "/v1/surveys/submissions",
		`{"form_config_id":"`+configID+`","data":{"age":30,"gender":"female","pregnancy_status":"no"}}`, user)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	submissionID := decode(t, rr)["submission_id"].(string)

	stored := server.surveys.Store
	sub, err := stored.GetSubmission(context.Background(), submissionID)
	if err != nil {
		t.Fatalf("load stored submission: %v", err)
	}
	if sub.ClientIP != "203.0.113.9" || sub.UserAgent != "survey-client/1.0" {
		t.Fatalf("expected client metadata to be recorded, got ip=%q ua=%q", sub.ClientIP, sub.UserAgent)
	}

	rr = do(t, server, http.MethodGet, "/v1/surveys/submissions/"+submissionID, "", headers{"X-User-Id": "user-2"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user, got %d", rr.Code)
	}

	rr = do(t, server, http.MethodGet, "/v1/surveys/submissions?page=1&limit=5", "", user)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if total := item(t, decode(t, rr), "pagination")["total"]; total != float64(1) {
		t.Fatalf("expected one submission, got %v", total)
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()
	if rr := do(t, server, http.MethodPost, "/v1/admin/forms", taskConfig, admin); rr.Code != http.StatusCreated {
		t.Fatalf("publish task form: %d body=%s", rr.Code, rr.Body.String())
	}

	rr := do(t, server, http.MethodPost, "/v1/admin/tasks",
		`{"title":"Share the launch post","reward":"12.50","max_participants":1}`, admin)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	taskID := item(t, decode(t, rr), "item")["task_id"].(string)

	alice := headers{"X-User-Id": "alice"}
	rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", alice)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	claimID := item(t, decode(t, rr), "item")["claim_id"].(string)

	rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", alice)
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "ALREADY_CLAIMED" {
		t.Fatalf("expected 409 ALREADY_CLAIMED, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", headers{"X-User-Id": "bob"})
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "CAPACITY_FULL" {
		t.Fatalf("expected 409 CAPACITY_FULL, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodPost, "/v1/claims/"+claimID+"/submit", `{"data":{"post_url":"not a url"}}`, alice)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPost, "/v1/claims/"+claimID+"/submit", `{"data":{"post_url":"https://weibo.com/p/1"}}`, alice)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	submissionID := item(t, decode(t, rr), "submission")["submission_id"].(string)

	rr = do(t, server, http.MethodGet, "/v1/admin/submissions", "", admin)
	if rr.Code != http.StatusOK || len(decode(t, rr)["items"].([]any)) != 1 {
		t.Fatalf("expected one queued submission, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodPost, "/v1/admin/submissions/"+submissionID+"/review", `{"decision":"maybe"}`, admin)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown decision, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPost, "/v1/admin/submissions/"+submissionID+"/review", `{"decision":"approved","feedback":"great"}`, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	claim := item(t, decode(t, rr), "item")
	if claim["status"] != "approved" || claim["reward"] != "12.50" {
		t.Fatalf("expected approved claim with task reward, got %v", claim)
	}

	rr = do(t, server, http.MethodPost, "/v1/claims/"+claimID+"/cancel", "", alice)
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "TERMINAL_STATE" {
		t.Fatalf("expected 409 TERMINAL_STATE, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodGet, "/v1/claims/stats", "", alice)
	if rr.Code != http.StatusOK || decode(t, rr)["earned"] != "12.50" {
		t.Fatalf("expected earned 12.50, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminEditsTaskAndBrowsesReviewedSubmissions(t *testing.T) {
	server := newTestServer()
	if rr := do(t, server, http.MethodPost, "/v1/admin/forms", taskConfig, admin); rr.Code != http.StatusCreated {
		t.Fatalf("publish task form: %d body=%s", rr.Code, rr.Body.String())
	}
	rr := do(t, server, http.MethodPost, "/v1/admin/tasks",
		`{"title":"Share the launch post","reward":"5.00","max_participants":3}`, admin)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	taskID := item(t, decode(t, rr), "item")["task_id"].(string)

	alice := headers{"X-User-Id": "alice"}
	rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", alice)
	claimID := item(t, decode(t, rr), "item")["claim_id"].(string)
	rr = do(t, server, http.MethodPost, "/v1/claims/"+claimID+"/submit", `{"data":{"post_url":"https://weibo.com/p/2"}}`, alice)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	submissionID := item(t, decode(t, rr), "submission")["submission_id"].(string)
	rr = do(t, server, http.MethodPost, "/v1/admin/submissions/"+submissionID+"/review", `{"decision":"approved"}`, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", headers{"X-User-Id": "bob"}); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodGet, "/v1/admin/submissions", "", admin)
	if len(decode(t, rr)["items"].([]any)) != 0 {
		t.Fatalf("expected empty review queue, got %s", rr.Body.String())
	}
	rr = do(t, server, http.MethodGet, "/v1/admin/submissions/history?task_id="+taskID, "", admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	items := decode(t, rr)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one reviewed submission, got %s", rr.Body.String())
	}
	record := items[0].(map[string]any)
	if record["submission_id"] != submissionID || item(t, record, "claim")["status"] != "approved" {
		t.Fatalf("expected approved submission %s, got %v", submissionID, record)
	}
	rr = do(t, server, http.MethodGet, "/v1/admin/submissions/history?status=submitted", "", admin)
	if len(decode(t, rr)["items"].([]any)) != 0 {
		t.Fatalf("expected no submitted items, got %s", rr.Body.String())
	}
	rr = do(t, server, http.MethodGet, "/v1/admin/submissions/history?status=claimed", "", admin)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for claimed filter, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodPatch, "/v1/admin/tasks/"+taskID, `{"max_participants":1}`, admin)
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "CAP_BELOW_PARTICIPANTS" {
		t.Fatalf("expected 409 CAP_BELOW_PARTICIPANTS, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPatch, "/v1/admin/tasks/"+taskID, `{}`, admin)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPatch, "/v1/admin/tasks/"+taskID,
		`{"title":"Share the relaunch post","reward":"7.25","max_participants":2}`, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	task := item(t, decode(t, rr), "item")
	if task["title"] != "Share the relaunch post" || task["reward"] != "7.25" || task["remaining_slots"] != float64(0) {
		t.Fatalf("unexpected task after edit: %v", task)
	}
	rr = do(t, server, http.MethodPost, "/v1/tasks/"+taskID+"/claim", "", headers{"X-User-Id": "carol"})
	if rr.Code != http.StatusConflict || decode(t, rr)["code"] != "CAPACITY_FULL" {
		t.Fatalf("expected 409 CAPACITY_FULL after lowering cap, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestIdentityHeadersAreRequired(t *testing.T) {
	server := newTestServer()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/tasks"},
		{http.MethodPost, "/v1/tasks/task-1/claim"},
		{http.MethodGet, "/v1/claims/stats"},
		{http.MethodPost, "/v1/surveys/submissions"},
		{http.MethodGet, "/v1/admin/forms"},
		{http.MethodPost, "/v1/admin/tasks"},
		{http.MethodGet, "/v1/admin/submissions"},
	}
	for _, tc := range cases {
		rr := do(t, server, tc.method, tc.path, `{}`, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestRequestValidationErrors(t *testing.T) {
	server := newTestServer()

	rr := do(t, server, http.MethodPost, "/v1/admin/tasks", `{"max_participants":-1}`, admin)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := decode(t, rr)
	if payload["code"] != "INVALID_REQUEST" || len(payload["errors"].([]any)) != 2 {
		t.Fatalf("expected title and max_participants problems, got %v", payload)
	}

	rr = do(t, server, http.MethodPost, "/v1/forms/validate", `not json`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rr.Code)
	}

	rr = do(t, server, http.MethodGet, "/v1/tasks?limit=ten", "", headers{"X-User-Id": "alice"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer limit, got %d", rr.Code)
	}

	rr = do(t, server, http.MethodGet, "/v1/tasks/missing", "", headers{"X-User-Id": "alice"})
	if rr.Code != http.StatusNotFound || decode(t, rr)["code"] != "NOT_FOUND" {
		t.Fatalf("expected 404 NOT_FOUND, got %d body=%s", rr.Code, rr.Body.String())
	}
}
