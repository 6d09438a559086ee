// Package events publishes catalog lifecycle events to Kafka.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topics, one per event type.
const (
	ProductCreated  = "marketplace.product.created"
	ProductUpdated  = "marketplace.product.updated"
	ProductDeleted  = "marketplace.product.deleted"
	ProductApproved = "marketplace.product.approved"
	ProductRejected = "marketplace.product.rejected"

	ReviewAdded   = "marketplace.review.added"
	ReviewUpdated = "marketplace.review.updated"
	ReviewDeleted = "marketplace.review.deleted"

	SellerRegistered = "marketplace.seller.registered"
	SellerApproved   = "marketplace.seller.approved"
)

const (
	AggregateProduct = "product"
	AggregateSeller  = "seller"
)

// Event is the envelope of every published message.
type Event struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Timestamp     time.Time       `json:"timestamp"`
	Source        string          `json:"source"`
	ActorID       string          `json:"actor_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

func NewEvent(eventType, aggregateType string, aggregateID uuid.UUID, source string, data interface{}) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		AggregateID:   aggregateID.String(),
		AggregateType: aggregateType,
		Timestamp:     time.Now().UTC(),
		Source:        source,
		Data:          payload,
	}, nil
}

// WithActor records who triggered the event.
func (e *Event) WithActor(actorID uuid.UUID) *Event {
	if actorID != uuid.Nil {
		e.ActorID = actorID.String()
	}
	return e
}
