//go:build integration

package postgresadapter_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	surveyservice "taskhall/contexts/submission-core/survey-service"
	postgresadapter "taskhall/contexts/submission-core/survey-service/adapters/postgres"
	"taskhall/contexts/submission-core/survey-service/application/commands"
	"taskhall/contexts/submission-core/survey-service/application/queries"
	"taskhall/contexts/submission-core/survey-service/ports"
	"taskhall/internal/platform/db/dbtest"
	"taskhall/kernel/faults"
	"taskhall/kernel/formschema"

	"github.com/google/uuid"
)

type staticForms struct {
	config formschema.FormConfig
}

func (s staticForms) CurrentConfig(_ context.Context, kind formschema.FormKind) (formschema.FormConfig, error) {
	if kind != s.config.Kind {
		return formschema.FormConfig{}, faults.New(faults.ErrNotFound, faults.CodeNotFound, "no active config")
	}
	return s.config, nil
}

func (s staticForms) GetConfig(_ context.Context, configID string) (formschema.FormConfig, error) {
	if configID != s.config.ID {
		return formschema.FormConfig{}, faults.New(faults.ErrNotFound, faults.CodeNotFound, "config not found")
	}
	return s.config, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.EventEnvelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestSurveySubmissionsPersistAndRelay(t *testing.T) {
	ctx := context.Background()
	pg := dbtest.Postgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := postgresadapter.NewRepository(pg.DB, logger)
	publisher := &recordingPublisher{}
	form := formschema.FormConfig{
		ID:       "form-" + uuid.NewString(),
		Kind:     formschema.FormKindSurvey,
		Title:    "Profile",
		Version:  1,
		IsActive: true,
		Fields: []formschema.FieldSpec{
			{Name: "age", Kind: formschema.FieldNumber, Label: "Age", Required: true},
		},
	}
	module := surveyservice.NewModule(surveyservice.Dependencies{
		Submissions: repo,
		Forms:       staticForms{config: form},
		Outbox:      repo,
		Publisher:   publisher,
		Clock:       postgresadapter.SystemClock{},
		IDs:         postgresadapter.UUIDGenerator{},
		Topic:       "survey.events.v1",
		Logger:      logger,
	})

	userID := uuid.NewString()
	var firstID string
	for i := 0; i < 3; i++ {
		submission, err := module.Handler.Submit.Execute(ctx, commands.SubmitSurveyCommand{
			UserID:       userID,
			FormConfigID: form.ID,
			Data:         formschema.Payload{"age": float64(20 + i)},
			ClientIP:     "203.0.113.7",
			UserAgent:    "integration-test",
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if i == 0 {
			firstID = submission.SubmissionID
		}
	}

	stored, err := module.Handler.Get.Execute(ctx, userID, firstID)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if stored.ClientIP != "203.0.113.7" || stored.UserAgent != "integration-test" {
		t.Fatalf("request metadata not stored: %+v", stored)
	}
	if age, ok := stored.Data["age"].(float64); !ok || age != 20 {
		t.Fatalf("expected age 20 in stored answers, got %#v", stored.Data["age"])
	}

	page, err := module.Handler.ListMine.Execute(ctx, userID, queries.PageQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Page != 2 {
		t.Fatalf("unexpected page total=%d items=%d page=%d", page.Total, len(page.Items), page.Page)
	}

	byConfig, err := module.Handler.ListForConfig.Execute(ctx, "admin-1", form.ID, queries.PageQuery{})
	if err != nil {
		t.Fatalf("list by config: %v", err)
	}
	if byConfig.Total != 3 {
		t.Fatalf("expected 3 submissions for config, got %d", byConfig.Total)
	}

	if err := module.OutboxRelay.RunOnce(ctx); err != nil {
		t.Fatalf("relay: %v", err)
	}
	relayed := 0
	for _, event := range publisher.events {
		if event.PartitionKey == userID {
			relayed++
		}
	}
	if relayed != 3 {
		t.Fatalf("expected 3 relayed events for user, got %d", relayed)
	}
	pending, err := repo.ListPendingOutbox(ctx, 1000)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	for _, message := range pending {
		if message.PartitionKey == userID {
			t.Fatalf("relayed message %s still pending", message.OutboxID)
		}
	}
}
