// internal/services/events.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/events"
)

const eventSource = "mvshop-backend"

// eventEmitter publishes best effort: failures are logged and never reach
// the caller.
type eventEmitter struct {
	publisher events.Publisher
}

func newEventEmitter(publisher events.Publisher) eventEmitter {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return eventEmitter{publisher: publisher}
}

func (e eventEmitter) emit(ctx context.Context, eventType, aggregateType string, aggregateID, actorID uuid.UUID, data interface{}) {
	log := logrus.WithFields(logrus.Fields{
		"event_type":   eventType,
		"aggregate_id": aggregateID,
	})

	event, err := events.NewEvent(eventType, aggregateType, aggregateID, eventSource, data)
	if err != nil {
		log.WithError(err).Error("failed to build event")
		return
	}
	event.WithActor(actorID)

	if err := e.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("failed to publish event")
	}
}
