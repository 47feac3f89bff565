package surveyservice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	domainerrors "taskhall/contexts/submission-core/survey-service/domain/errors"
	"taskhall/contexts/submission-core/survey-service/ports"
	httptransport "taskhall/contexts/submission-core/survey-service/transport/http"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"
)

type switchableForms struct {
	mu     sync.Mutex
	active formschema.FormConfig
}

func (s *switchableForms) CurrentConfig(_ context.Context, kind formschema.FormKind) (formschema.FormConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active.ID == "" || kind != s.active.Kind {
		return formschema.FormConfig{}, faults.New(faults.ErrNotFound, faults.CodeNotFound, "no active config")
	}
	return s.active, nil
}

func (s *switchableForms) GetConfig(ctx context.Context, _ string) (formschema.FormConfig, error) {
	return s.CurrentConfig(ctx, formschema.FormKindSurvey)
}

func (s *switchableForms) activate(cfg formschema.FormConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = cfg
}

type recordingPublisher struct {
	events []ports.EventEnvelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.events = append(p.events, event)
	return nil
}

func floatPtr(value float64) *float64 {
	return &value
}

func profileSurvey(id string) formschema.FormConfig {
	return formschema.FormConfig{
		ID:    id,
		Kind:  formschema.FormKindSurvey,
		Title: "Participant profile",
		Fields: []formschema.FieldSpec{
			{Name: "age", Kind: formschema.FieldNumber, Label: "Age", Required: true,
				Constraints: formschema.Constraints{Min: floatPtr(18)}},
			{Name: "gender", Kind: formschema.FieldRadio, Label: "Gender", Required: true,
				Constraints: formschema.Constraints{Options: []formschema.Option{{Value: "female"}, {Value: "male"}}}},
			{Name: "pregnancy_status", Kind: formschema.FieldSelect, Label: "Pregnancy status",
				Constraints: formschema.Constraints{Options: []formschema.Option{{Value: "yes"}, {Value: "no"}}}},
			{Name: "id_photo", Kind: formschema.FieldFile, Label: "ID photo"},
		},
		ConditionalLogic: []formschema.ConditionalRule{
			{Condition: `gender == "female"`, RequiredFieldNames: []string{"pregnancy_status"}},
		},
	}
}

func newSurveyModule() (Module, *switchableForms, *recordingPublisher) {
	forms := &switchableForms{}
	forms.activate(profileSurvey("survey-v1"))
	publisher := &recordingPublisher{}
	return NewInMemoryModule(forms, publisher, slog.Default()), forms, publisher
}

func TestSubmitSurveyStoresSubmissionAndEvent(t *testing.T) {
	ctx := context.Background()
	module, _, publisher := newSurveyModule()

	resp, err := module.Handler.SubmitSurveyHandler(ctx, "user-a", "203.0.113.7", "test-agent", httptransport.SubmitSurveyRequest{
		FormConfigID: "survey-v1",
		Data:         map[string]any{"age": float64(30), "gender": "female", "pregnancy_status": "no"},
		Files: map[string][]httptransport.FileDTO{
			"id_photo": {{Name: "id.jpg", URL: "https://files.example/id.jpg"}},
		},
	})
	if err != nil {
		t.Fatalf("submit survey: %v", err)
	}
	if resp.SubmissionID == "" || resp.FileCount != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	stored, err := module.Handler.GetSubmissionHandler(ctx, "user-a", resp.SubmissionID)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if stored.Item.FormConfigID != "survey-v1" || stored.Item.Data["gender"] != "female" {
		t.Fatalf("unexpected stored submission %+v", stored.Item)
	}
	if _, err := module.Handler.GetSubmissionHandler(ctx, "user-b", resp.SubmissionID); !errors.Is(err, faults.ErrForbidden) {
		t.Fatalf("expected forbidden for another user, got %v", err)
	}

	if err := module.OutboxRelay.RunOnce(ctx); err != nil {
		t.Fatalf("relay: %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventType != "survey.submitted" || publisher.events[0].PartitionKey != "user-a" {
		t.Fatalf("expected one survey.submitted event, got %+v", publisher.events)
	}
}

func TestSubmitSurveyCollectsEveryError(t *testing.T) {
	module, _, _ := newSurveyModule()

	_, err := module.Handler.SubmitSurveyHandler(context.Background(), "user-a", "", "", httptransport.SubmitSurveyRequest{
		FormConfigID: "survey-v1",
		Data:         map[string]any{"age": float64(16), "gender": "female"},
	})
	messages := faults.ValidationMessages(err)
	if !errors.Is(err, faults.ErrValidation) || len(messages) != 2 {
		t.Fatalf("expected age and pregnancy errors, got %v", err)
	}
	if len(module.Store.OutboxEvents()) != 0 {
		t.Fatalf("invalid submission must not emit events")
	}
}

func TestSubmitSurveyRejectsStaleConfig(t *testing.T) {
	ctx := context.Background()
	module, forms, _ := newSurveyModule()
	forms.activate(profileSurvey("survey-v2"))

	_, err := module.Handler.SubmitSurveyHandler(ctx, "user-a", "", "", httptransport.SubmitSurveyRequest{
		FormConfigID: "survey-v1",
		Data:         map[string]any{"age": float64(30), "gender": "male"},
	})
	if !errors.Is(err, domainerrors.ErrFormConfigStale) || faults.CodeOf(err) != "FORM_CONFIG_STALE" {
		t.Fatalf("expected stale config, got %v", err)
	}

	forms.activate(formschema.FormConfig{})
	_, err = module.Handler.SubmitSurveyHandler(ctx, "user-a", "", "", httptransport.SubmitSurveyRequest{
		FormConfigID: "survey-v2",
		Data:         map[string]any{"age": float64(30), "gender": "male"},
	})
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found without an active survey, got %v", err)
	}
}

func TestListSubmissionsPaginates(t *testing.T) {
	ctx := context.Background()
	module, _, _ := newSurveyModule()
	for i := 0; i < 3; i++ {
		if _, err := module.Handler.SubmitSurveyHandler(ctx, "user-a", "", "", httptransport.SubmitSurveyRequest{
			FormConfigID: "survey-v1",
			Data:         map[string]any{"age": float64(20 + i), "gender": "male"},
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	page, err := module.Handler.ListMySubmissionsHandler(ctx, "user-a", 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Total != 3 || len(page.Items) != 1 || page.Pagination.Page != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	other, _ := module.Handler.ListMySubmissionsHandler(ctx, "user-b", 1, 10)
	if other.Pagination.Total != 0 {
		t.Fatalf("expected no submissions for user-b, got %d", other.Pagination.Total)
	}

	admin, err := module.Handler.ListConfigSubmissionsHandler(ctx, "admin-1", "survey-v1", 1, 10)
	if err != nil || admin.Pagination.Total != 3 {
		t.Fatalf("expected three submissions for config, got %+v err=%v", admin.Pagination, err)
	}
	if _, err := module.Handler.ListConfigSubmissionsHandler(ctx, "", "survey-v1", 1, 10); !errors.Is(err, domainerrors.ErrActorRequired) {
		t.Fatalf("expected actor required, got %v", err)
	}
}
