package notifier

import (
	"context"

	"fairprice/core"
	"fairprice/internal/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type notifier struct {
	events core.EventStore
}

// New notifier that logs, counts and records every event.
// events may be nil, then events are only logged
func New(events core.EventStore) core.Notifier {
	return &notifier{events: events}
}

func (n *notifier) Notify(ctx context.Context, event *core.Event) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    event.Type,
		"trace_id": event.TraceID,
	})

	if event.AssetID != "" {
		log = log.WithField("asset", event.AssetID)
	}

	if event.Actor != "" {
		log = log.WithField("actor", event.Actor)
	}

	if event.Value != "" {
		log = log.WithField("value", event.Value)
	}

	if event.Reason != "" {
		log = log.WithField("reason", event.Reason)
	}

	switch event.Type {
	case core.EventPriceUpdated:
		log.Debugln("oracle event")
	case core.EventFallbackUsed, core.EventPaused:
		log.Warnln("oracle event")
	default:
		log.Infoln("oracle event")
	}

	metrics.Oracle().ObserveEvent(string(event.Type))

	if n.events == nil {
		return
	}

	if err := n.events.Create(ctx, event); err != nil {
		log.WithError(err).Errorln("events.Create")
	}
}
