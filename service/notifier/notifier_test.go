package notifier

import (
	"context"
	"errors"
	"testing"

	"fairprice/core"
	"fairprice/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	core.EventStore
}

func (failingStore) Create(context.Context, *core.Event) error {
	return errors.New("db down")
}

func TestNotify(t *testing.T) {
	ctx := context.Background()
	events := memory.NewEventStore()
	n := New(events)

	n.Notify(ctx, &core.Event{TraceID: "a", Type: core.EventPaused, Actor: "owner", Reason: "incident"})
	n.Notify(ctx, &core.Event{TraceID: "a", Type: core.EventPaused, Actor: "owner", Reason: "incident"})
	n.Notify(ctx, &core.Event{TraceID: "b", Type: core.EventFallbackUsed, AssetID: "eth", Value: "2000"})

	list, err := events.List(ctx, 0, 10)
	require.Nil(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, core.EventPaused, list[0].Type)
	assert.Equal(t, "eth", list[1].AssetID)
}

func TestNotifyIgnoresStoreErrors(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		New(failingStore{}).Notify(ctx, &core.Event{TraceID: "a", Type: core.EventResumed})
		New(nil).Notify(ctx, &core.Event{TraceID: "b", Type: core.EventResumed})
	})
}
