package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

func newTestLogger(t *testing.T, buf *bytes.Buffer) ports.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: buf, Level: "debug"})
	require.NoError(t, err)
	return log
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newTestLogger(t, buf))

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, ports.NewEvent(ports.EventComponentAdded, "component_type", "hero"))
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["message"])
	require.Equal(t, ports.EventComponentAdded, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "hero", entry["component_type"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(logger.NewNoOp())

	var typed, wildcard int
	_, err := publisher.Subscribe(ports.EventPageSaved, func(context.Context, ports.DomainEvent) error {
		typed++
		return nil
	})
	require.NoError(t, err)
	sub, err := publisher.Subscribe(Wildcard, func(context.Context, ports.DomainEvent) error {
		wildcard++
		return errors.New("handler failure is logged, not returned")
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), ports.NewEvent(ports.EventPageSaved)))
	require.NoError(t, publisher.Publish(context.Background(), ports.NewEvent(ports.EventPageCleared)))
	require.Equal(t, 1, typed)
	require.Equal(t, 2, wildcard)

	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), ports.NewEvent(ports.EventPageSaved)))
	require.Equal(t, 2, typed)
	require.Equal(t, 2, wildcard)
}

func TestNilPublisherIsSafe(t *testing.T) {
	t.Parallel()

	var publisher *LoggingPublisher
	require.NoError(t, publisher.Publish(context.Background(), ports.NewEvent(ports.EventPageSaved)))
	sub, err := publisher.Subscribe(ports.EventPageSaved, func(context.Context, ports.DomainEvent) error { return nil })
	require.NoError(t, err)
	sub.Unsubscribe()
}
