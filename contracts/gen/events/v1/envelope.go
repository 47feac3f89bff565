package v1

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Envelope is the versioned event shape relayed from every context outbox.
// Fields are additive only; consumers key on EventType and SchemaVersion.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id,omitempty"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// ErrIncompleteEnvelope is returned by Seal when identity fields are missing.
var ErrIncompleteEnvelope = errors.New("event envelope requires event_id, event_type and source_service")

// Seal encodes data into the envelope and returns the wire payload stored in
// an outbox row.
func Seal(envelope Envelope, data any) (Envelope, []byte, error) {
	if strings.TrimSpace(envelope.EventID) == "" ||
		strings.TrimSpace(envelope.EventType) == "" ||
		strings.TrimSpace(envelope.SourceService) == "" {
		return Envelope{}, nil, ErrIncompleteEnvelope
	}
	if envelope.SchemaVersion <= 0 {
		envelope.SchemaVersion = 1
	}
	envelope.OccurredAt = envelope.OccurredAt.UTC()

	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, nil, err
	}
	envelope.Data = raw

	payload, err := json.Marshal(envelope)
	if err != nil {
		return Envelope{}, nil, err
	}
	return envelope, payload, nil
}
