package tagstack

import (
	"sync"

	"github.com/pixil98/go-inventory/internal/tags"
)

// StackFunc observes a stack change. newCount is zero when the stack was
// removed; delta is the signed change that was applied.
type StackFunc func(tag tags.Tag, newCount, delta float64)

// Handle identifies a binding so it can be removed later.
type Handle uint64

type binding struct {
	handle Handle
	tag    tags.Tag // empty for catch-all bindings
	fn     StackFunc
}

type bindings struct {
	mu   sync.Mutex
	next Handle
	list []binding
}

func (b *bindings) add(tag tags.Tag, fn StackFunc) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.list = append(b.list, binding{handle: b.next, tag: tag, fn: fn})
	return b.next
}

func (b *bindings) remove(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, bd := range b.list {
		if bd.handle == h {
			b.list = append(b.list[:i:i], b.list[i+1:]...)
			return true
		}
	}
	return false
}

// notify calls per-tag bindings first, then catch-all bindings, each group
// in registration order. The binding list is copied so callbacks can bind
// and unbind freely.
func (b *bindings) notify(tag tags.Tag, newCount, delta float64) {
	b.mu.Lock()
	list := make([]binding, len(b.list))
	copy(list, b.list)
	b.mu.Unlock()

	for _, bd := range list {
		if bd.tag == tag {
			bd.fn(tag, newCount, delta)
		}
	}
	for _, bd := range list {
		if bd.tag == "" {
			bd.fn(tag, newCount, delta)
		}
	}
}

// BindToStack registers fn for changes to a single tag.
func (c *Container) BindToStack(tag tags.Tag, fn StackFunc) Handle {
	if fn == nil || !tag.IsValid() {
		return 0
	}
	return c.bindings.add(tag, fn)
}

// BindToAnyStack registers fn for changes to every tag.
func (c *Container) BindToAnyStack(fn StackFunc) Handle {
	if fn == nil {
		return 0
	}
	return c.bindings.add("", fn)
}

// Unbind removes a binding. It returns false if the handle is unknown.
func (c *Container) Unbind(h Handle) bool {
	if h == 0 {
		return false
	}
	return c.bindings.remove(h)
}
