package messaging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	contractsv1 "taskhall/contracts/gen/events/v1"

	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribersOfTopic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := NewKafka(slog.Default())
	require.NoError(t, err)

	received := make(chan contractsv1.Envelope, 1)
	require.NoError(t, bus.Subscribe(ctx, "taskhall.task-claims", "notifications", func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, "taskhall.surveys", contractsv1.Envelope{EventID: "ignored"}))
	require.NoError(t, bus.Publish(ctx, "taskhall.task-claims", contractsv1.Envelope{EventID: "evt-1", EventType: "task.claimed"}))

	select {
	case event := <-received:
		require.Equal(t, "evt-1", event.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestPublishDropsForFullSubscriberWithoutBlocking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := NewKafka(nil)
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)
	require.NoError(t, bus.Subscribe(ctx, "taskhall.surveys", "notifications", func(context.Context, contractsv1.Envelope) error {
		<-release
		return nil
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 300; i++ {
			if err := bus.Publish(ctx, "taskhall.surveys", contractsv1.Envelope{EventID: "evt"}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
