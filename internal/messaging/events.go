package messaging

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/tags"
)

// Publisher sends a payload to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the wire form of an inventory event.
type Envelope struct {
	ID      string              `json:"id"`
	Kind    inventory.EventKind `json:"kind"`
	Owner   string              `json:"owner"`
	Item    tags.Tag            `json:"item,omitempty"`
	Amount  float64             `json:"amount,omitempty"`
	Dropped bool                `json:"dropped,omitempty"`
	Time    time.Time           `json:"time"`
}

// EventPublisher forwards inventory bus events to NATS.
type EventPublisher struct {
	pub   Publisher
	now   func() time.Time
	newID func() string
}

func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{
		pub:   pub,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Attach subscribes the publisher to bus.
func (p *EventPublisher) Attach(bus *inventory.Bus) inventory.Subscription {
	return bus.Subscribe(p.Handle)
}

// Handle publishes a single event. Failures are logged; the bus has no way
// to report them back to the operation that raised the event.
func (p *EventPublisher) Handle(e inventory.Event) {
	env := Envelope{
		ID:      p.newID(),
		Kind:    e.Kind,
		Owner:   e.OwnerID,
		Item:    e.Item,
		Amount:  e.Amount,
		Dropped: e.Dropped,
		Time:    p.now().UTC(),
	}

	data, err := json.Marshal(env)
	if err != nil {
		slog.Error("marshalling inventory event", "kind", e.Kind, "owner", e.OwnerID, "error", err)
		return
	}

	if err := p.pub.Publish(EventSubject(e.OwnerID, e.Kind), data); err != nil {
		slog.Warn("publishing inventory event", "kind", e.Kind, "owner", e.OwnerID, "error", err)
	}
}
