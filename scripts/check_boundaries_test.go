package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, root string, rel string, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestCollectViolationsAllowsKernelAndOwnLayers(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "submission-core/task-claim-service/domain/entities/claim.go", `package entities

import (
	"time"

	"taskhall/kernel/formschema"
)
`)
	writeSource(t, root, "submission-core/task-claim-service/application/commands/claim.go", `package commands

import (
	"taskhall/contexts/submission-core/task-claim-service/ports"
	contractsv1 "taskhall/contracts/gen/events/v1"
	"taskhall/kernel/faults"
)
`)

	if violations := collectViolations(root); len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestCollectViolationsFlagsForbiddenImports(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "submission-core/task-claim-service/domain/services/policy.go", `package services

import (
	"gorm.io/gorm"
	"taskhall/internal/platform/db"
)
`)
	writeSource(t, root, "submission-core/survey-service/application/queries/list.go", `package queries

import (
	"taskhall/contexts/submission-core/survey-service/adapters/memory"
	"taskhall/contexts/submission-core/task-claim-service/ports"
)
`)

	violations := collectViolations(root)
	rules := map[string]int{}
	for _, v := range violations {
		rules[v.Rule]++
	}
	if rules["cross-module imports are forbidden"] != 1 {
		t.Fatalf("expected one cross-module violation, got %+v", violations)
	}
	if rules["domain must not import runtime infrastructure"] != 1 {
		t.Fatalf("expected runtime infrastructure violation, got %+v", violations)
	}
	if rules["application must not import adapters"] != 1 {
		t.Fatalf("expected adapter import violation, got %+v", violations)
	}
	if rules["domain import is outside explicit allowlist"] != 2 {
		t.Fatalf("expected gorm and internal imports outside allowlist, got %+v", violations)
	}
}
