package kernel_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecorder(t *testing.T) {
	var recorder kernel.EventRecorder
	aggregateID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	recorder.Record("order.status_changed", aggregateID, at, map[string]string{"to": "QUOTE_SENT"})
	recorder.Record("negotiation.proposed", aggregateID, at, nil)

	events := recorder.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "order.status_changed", events[0].Name)
	assert.True(t, events[0].AggregateID.IsEqual(aggregateID))
	assert.Equal(t, "QUOTE_SENT", events[0].Attributes["to"])
	require.NoError(t, events[1].ID.Validate())

	assert.Empty(t, recorder.PullEvents(), "pull clears the buffer")
}
