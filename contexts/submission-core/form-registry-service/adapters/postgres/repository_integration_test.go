//go:build integration

package postgresadapter_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	formregistryservice "taskhall/contexts/submission-core/form-registry-service"
	jsonschemaadapter "taskhall/contexts/submission-core/form-registry-service/adapters/jsonschema"
	"taskhall/contexts/submission-core/form-registry-service/adapters/memory"
	postgresadapter "taskhall/contexts/submission-core/form-registry-service/adapters/postgres"
	"taskhall/contexts/submission-core/form-registry-service/application/commands"
	"taskhall/internal/platform/db/dbtest"
	"taskhall/kernel/formschema"
)

const taskDocument = `{
	"kind": "task",
	"title": "Proof of completion",
	"fields": [
		{"name": "post_url", "kind": "url", "label": "Post link", "required": true}
	]
}`

func newPostgresModule(t *testing.T) formregistryservice.Module {
	t.Helper()
	pg := dbtest.Postgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	documents, err := jsonschemaadapter.NewDocumentValidator()
	if err != nil {
		t.Fatalf("compile document schema: %v", err)
	}
	return formregistryservice.NewModule(formregistryservice.Dependencies{
		Configs:   postgresadapter.NewRepository(pg.DB, logger),
		Cache:     memory.NewStore(nil, logger),
		Documents: documents,
		Clock:     postgresadapter.SystemClock{},
		IDs:       postgresadapter.UUIDGenerator{},
		Logger:    logger,
	})
}

func TestConcurrentPublishKeepsOneActiveVersion(t *testing.T) {
	ctx := context.Background()
	module := newPostgresModule(t)

	const publishers = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		versions = map[int]bool{}
	)
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := module.Handler.Publish.Execute(ctx, commands.PublishFormConfigCommand{
				Document: []byte(taskDocument),
				ActorID:  "admin-1",
				Activate: true,
			})
			if err != nil {
				t.Errorf("publish: %v", err)
				return
			}
			mu.Lock()
			versions[result.Config.Version] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(versions) != publishers {
		t.Fatalf("expected %d distinct versions, got %v", publishers, versions)
	}
	all, err := module.Handler.List.Execute(ctx, formschema.FormKindTask)
	if err != nil {
		t.Fatalf("list configs: %v", err)
	}
	active := 0
	var activeID string
	for _, cfg := range all {
		if cfg.IsActive {
			active++
			activeID = cfg.ID
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active task config, got %d", active)
	}

	current, err := module.Reader.CurrentConfig(ctx, formschema.FormKindTask)
	if err != nil {
		t.Fatalf("current config: %v", err)
	}
	if current.ID != activeID {
		t.Fatalf("current config %s does not match active row %s", current.ID, activeID)
	}
	if len(current.Fields) != 1 || current.Fields[0].Name != "post_url" {
		t.Fatalf("stored document did not round trip: %+v", current.Fields)
	}
}
