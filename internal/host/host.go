package host

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

// Snapshot is the full ledger of one inventory at a given version. Ledger is
// a detached copy and encodes as the container's ordered stack list.
type Snapshot struct {
	OwnerID string              `json:"owner"`
	Version uint64              `json:"version"`
	Ledger  *tagstack.Container `json:"ledger"`
}

// SnapshotSink receives snapshots of inventories that changed since the
// previous tick.
type SnapshotSink interface {
	PublishSnapshot(ctx context.Context, s Snapshot) error
}

// Host is the single source of truth for every open inventory.
// All access must go through its methods to ensure thread-safety.
type Host struct {
	mu      sync.RWMutex
	entries map[string]*entry

	resolver     catalog.Resolver
	bus          *inventory.Bus
	sink         SnapshotSink
	startupItems map[tags.Tag]float64
	logger       *slog.Logger
}

type entry struct {
	mu  sync.Mutex
	id  string
	inv *inventory.Inventory

	published   bool
	lastVersion uint64
}

// NewHost creates an empty Host. Every inventory it opens resolves recipes
// through resolver and publishes to the host's bus.
func NewHost(resolver catalog.Resolver, opts ...HostOpt) *Host {
	h := &Host{
		entries:  make(map[string]*entry),
		resolver: resolver,
		bus:      inventory.NewBus(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Bus returns the event bus shared by all inventories on this host.
func (h *Host) Bus() *inventory.Bus {
	return h.bus
}

// Open creates an inventory for owner. The id is reserved before the
// inventory is built, so concurrent opens of one owner grant the startup
// items once. Other callers for the id wait until the grant has finished.
func (h *Host) Open(owner inventory.Owner) (*inventory.Inventory, error) {
	if owner == nil {
		return nil, fmt.Errorf("owner must be set")
	}
	id := owner.ID()

	e := &entry{id: id}
	e.mu.Lock()
	defer e.mu.Unlock()

	h.mu.Lock()
	if _, exists := h.entries[id]; exists {
		h.mu.Unlock()
		return nil, ErrInventoryExists
	}
	h.entries[id] = e
	h.mu.Unlock()

	e.inv = inventory.New(owner, h.resolver,
		inventory.WithBus(h.bus),
		inventory.WithLogger(h.logger.With("owner", id)),
		inventory.WithStartupItems(h.startupItems),
	)

	h.logger.Debug("inventory opened", "owner", id)
	return e.inv, nil
}

// Get returns the inventory for id. Returns nil if it is not open.
func (h *Host) Get(id string) *inventory.Inventory {
	h.mu.RLock()
	e, ok := h.entries[id]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv
}

// Close drops the inventory for id. The inventory's owner is detached so
// callers still holding it can no longer mutate it.
func (h *Host) Close(id string) error {
	h.mu.Lock()
	e, ok := h.entries[id]
	if !ok {
		h.mu.Unlock()
		return ErrInventoryNotFound
	}
	delete(h.entries, id)
	h.mu.Unlock()

	e.mu.Lock()
	e.inv.SetOwner(nil)
	e.mu.Unlock()

	h.logger.Debug("inventory closed", "owner", id)
	return nil
}

// Do runs fn with exclusive access to the inventory for id.
func (h *Host) Do(id string, fn func(*inventory.Inventory)) error {
	h.mu.RLock()
	e, ok := h.entries[id]
	h.mu.RUnlock()
	if !ok {
		return ErrInventoryNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.inv)
	return nil
}

// Ids returns the owner ids of all open inventories, sorted.
func (h *Host) Ids() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.entries))
	for id := range h.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sorted returns the open entries in owner id order.
func (h *Host) sorted() []*entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*entry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Tick hands a snapshot of every inventory whose ledger changed since the
// last tick to the snapshot sink.
func (h *Host) Tick(ctx context.Context) error {
	if h.sink == nil {
		return nil
	}

	var pending []Snapshot
	for _, e := range h.sorted() {
		e.mu.Lock()
		ledger := e.inv.Ledger().Clone()
		if v := ledger.Version(); !e.published || e.lastVersion != v {
			e.published = true
			e.lastVersion = v
			pending = append(pending, Snapshot{
				OwnerID: e.id,
				Version: v,
				Ledger:  ledger,
			})
		}
		e.mu.Unlock()
	}

	el := errors.NewErrorList()
	for _, s := range pending {
		if err := h.sink.PublishSnapshot(ctx, s); err != nil {
			el.Add(fmt.Errorf("publishing snapshot for %s: %w", s.OwnerID, err))
		}
	}
	return el.Err()
}
