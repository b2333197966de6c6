package core

import (
	"context"
	"time"
)

// EventType event kind
type EventType string

const (
	EventFeedRegistered      EventType = "feed_registered"
	EventVaultRegistered     EventType = "vault_registered"
	EventManualPriceSet      EventType = "manual_price_set"
	EventManualPriceDisabled EventType = "manual_price_disabled"
	EventStalePeriodSet      EventType = "stale_period_set"
	EventFallbackPeriodSet   EventType = "fallback_stale_period_set"
	EventRateBoundsSet       EventType = "rate_bounds_set"
	EventPaused              EventType = "paused"
	EventResumed             EventType = "resumed"
	EventPriceUpdated        EventType = "price_updated"
	EventFallbackUsed        EventType = "fallback_used"
)

type (
	// Event audit record of an oracle state change or observation
	Event struct {
		ID        int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
		TraceID   string    `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id,omitempty"`
		Type      EventType `sql:"size:36" json:"type"`
		AssetID   string    `sql:"size:64" json:"asset_id,omitempty"`
		Actor     string    `sql:"size:64" json:"actor,omitempty"`
		Value     string    `sql:"size:128" json:"value,omitempty"`
		Timestamp int64     `json:"timestamp,omitempty"`
		Reason    string    `sql:"size:255" json:"reason,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	// EventStore append only event store
	EventStore interface {
		Create(ctx context.Context, event *Event) error
		List(ctx context.Context, from int64, limit int) ([]*Event, error)
	}

	// Notifier receives oracle events, it must not block resolution
	Notifier interface {
		Notify(ctx context.Context, event *Event)
	}
)
