package v1

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSealDefaultsSchemaVersionAndEncodesData(t *testing.T) {
	occurred := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	envelope, payload, err := Seal(Envelope{
		EventID:       "evt-1",
		EventType:     "task.claimed",
		SourceService: "task-claim-service",
		OccurredAt:    occurred,
	}, map[string]string{"claim_id": "c-1"})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if envelope.SchemaVersion != 1 {
		t.Fatalf("expected schema version 1, got %d", envelope.SchemaVersion)
	}
	if envelope.OccurredAt.Location() != time.UTC {
		t.Fatalf("expected UTC occurred_at")
	}

	var decoded Envelope
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var data map[string]string
	if err := json.Unmarshal(decoded.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["claim_id"] != "c-1" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestSealRejectsIncompleteEnvelope(t *testing.T) {
	_, _, err := Seal(Envelope{EventType: "task.claimed"}, nil)
	if !errors.Is(err, ErrIncompleteEnvelope) {
		t.Fatalf("expected ErrIncompleteEnvelope, got %v", err)
	}
}
