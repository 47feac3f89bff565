package ports

import contractsv1 "taskhall/contracts/gen/events/v1"

const SourceService = "task-claim-service"

// SealTaskEvent builds the wire payload stored in an outbox row.
func SealTaskEvent(event TaskEvent) ([]byte, error) {
	_, payload, err := contractsv1.Seal(contractsv1.Envelope{
		EventID:          event.EventID,
		EventType:        event.EventType,
		OccurredAt:       event.OccurredAt,
		SourceService:    SourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "task_id",
		PartitionKey:     event.PartitionKey,
	}, event.Data)
	return payload, err
}
