package tagstack

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/pixil98/go-inventory/internal/tags"
)

// Stack is a tag with a positive count.
type Stack struct {
	Tag   tags.Tag `json:"tag"`
	Count float64  `json:"count"`
}

// Container holds at most one Stack per tag. Stacks are kept in insertion
// order so listings and serialized forms are deterministic. A stack whose
// count would drop to zero or below is removed, never stored.
//
// Observers bound to the container are invoked after the lock is released,
// so they may call back into the container.
type Container struct {
	mu      sync.RWMutex
	stacks  []Stack
	index   map[tags.Tag]int
	version uint64

	bindings bindings
}

// ValidAmount reports whether amount is a finite positive quantity.
func ValidAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{
		index: make(map[tags.Tag]int),
	}
}

// AddStack adds amount to the stack for tag, creating it if needed.
// Amounts that are not finite and positive, and invalid tags, are ignored.
func (c *Container) AddStack(tag tags.Tag, amount float64) {
	if !ValidAmount(amount) || !tag.IsValid() {
		return
	}

	c.mu.Lock()
	if c.index == nil {
		c.index = make(map[tags.Tag]int)
	}
	var newCount float64
	if i, ok := c.index[tag]; ok {
		c.stacks[i].Count += amount
		newCount = c.stacks[i].Count
	} else {
		c.index[tag] = len(c.stacks)
		c.stacks = append(c.stacks, Stack{Tag: tag, Count: amount})
		newCount = amount
	}
	c.version++
	c.mu.Unlock()

	c.bindings.notify(tag, newCount, amount)
}

// RemoveStack subtracts amount from the stack for tag. If amount covers the
// whole stack it is deleted and observers see a new count of zero.
// Absent tags and amounts that are not finite and positive are ignored.
func (c *Container) RemoveStack(tag tags.Tag, amount float64) {
	if !ValidAmount(amount) {
		return
	}

	c.mu.Lock()
	i, ok := c.index[tag]
	if !ok {
		c.mu.Unlock()
		return
	}

	var newCount, delta float64
	if amount >= c.stacks[i].Count {
		delta = -c.stacks[i].Count
		c.removeAt(i)
	} else {
		c.stacks[i].Count -= amount
		newCount = c.stacks[i].Count
		delta = -amount
	}
	c.version++
	c.mu.Unlock()

	c.bindings.notify(tag, newCount, delta)
}

// removeAt deletes the stack at i keeping order. Caller must hold the lock.
func (c *Container) removeAt(i int) {
	delete(c.index, c.stacks[i].Tag)
	c.stacks = append(c.stacks[:i], c.stacks[i+1:]...)
	for j := i; j < len(c.stacks); j++ {
		c.index[c.stacks[j].Tag] = j
	}
}

// ContainsTag reports whether a stack for tag is held.
func (c *Container) ContainsTag(tag tags.Tag) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.index[tag]
	return ok
}

// GetStackCount returns the count held for tag, or zero.
func (c *Container) GetStackCount(tag tags.Tag) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i, ok := c.index[tag]; ok {
		return c.stacks[i].Count
	}
	return 0
}

// ClearStack drops every stack without notifying observers.
func (c *Container) ClearStack() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stacks = nil
	c.index = make(map[tags.Tag]int)
	c.version++
}

// GetGameplayTagStackList returns a copy of the held stacks in insertion
// order. Callers may mutate the container while iterating the result.
func (c *Container) GetGameplayTagStackList() []Stack {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Stack, len(c.stacks))
	copy(out, c.stacks)
	return out
}

func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stacks)
}

// Total returns the sum of all counts.
func (c *Container) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, s := range c.stacks {
		total += s.Count
	}
	return total
}

// Version increments on every mutation, including ClearStack.
func (c *Container) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Clone returns an independent copy of the stacks and version. Bindings are
// not copied.
func (c *Container) Clone() *Container {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := &Container{
		stacks:  make([]Stack, len(c.stacks)),
		index:   make(map[tags.Tag]int, len(c.index)),
		version: c.version,
	}
	copy(out.stacks, c.stacks)
	for tag, i := range c.index {
		out.index[tag] = i
	}
	return out
}

func (c *Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.GetGameplayTagStackList())
}

// UnmarshalJSON replaces the contents with the decoded stacks. Observers are
// not notified. Duplicate tags are merged and non-positive counts rejected.
func (c *Container) UnmarshalJSON(b []byte) error {
	var list []Stack
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}

	stacks := make([]Stack, 0, len(list))
	index := make(map[tags.Tag]int, len(list))
	for _, s := range list {
		if !ValidAmount(s.Count) {
			return fmt.Errorf("stack %q: count must be positive", s.Tag)
		}
		if i, ok := index[s.Tag]; ok {
			stacks[i].Count += s.Count
			continue
		}
		index[s.Tag] = len(stacks)
		stacks = append(stacks, s)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stacks = stacks
	c.index = index
	c.version++
	return nil
}
