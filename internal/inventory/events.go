package inventory

import (
	"sync"

	"github.com/pixil98/go-inventory/internal/tags"
)

type EventKind string

const (
	EventGranted        EventKind = "granted"
	EventUsed           EventKind = "used"
	EventRemoved        EventKind = "removed"
	EventAllDropped     EventKind = "all_dropped"
	EventCrafted        EventKind = "crafted"
	EventRecipeConsumed EventKind = "recipe_consumed"
)

// Event describes a completed inventory operation.
type Event struct {
	Kind    EventKind
	OwnerID string
	Item    tags.Tag
	Amount  float64

	// Dropped is set on EventRemoved when the item left through a drop.
	Dropped bool
}

type Handler func(Event)

// Subscription identifies a Bus handler.
type Subscription uint64

type subscriber struct {
	id Subscription
	fn Handler
}

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu   sync.Mutex
	next Subscription
	subs []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn Handler) Subscription {
	if fn == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.subs = append(b.subs, subscriber{id: b.next, fn: fn})
	return b.next
}

// Unsubscribe removes a handler. It returns false if s is unknown.
func (b *Bus) Unsubscribe(s Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.id == s {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}
