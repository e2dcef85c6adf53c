package inventory

import (
	"log/slog"
	"sort"

	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

// Inventory is the item ledger of a single owner plus the operations that
// change it. Preconditions that fail (no owner, missing items, unknown
// recipes) make an operation return false; they are never errors.
//
// The ledger itself is safe for concurrent use, but an operation checks and
// then mutates, so callers sharing an Inventory between goroutines must
// serialise operations themselves (see host.Host.Do).
type Inventory struct {
	owner    Owner
	resolver catalog.Resolver
	held     *tagstack.Container
	bus      *Bus
	logger   *slog.Logger

	startupItems map[tags.Tag]float64
}

type Opt func(*Inventory)

// WithStartupItems grants items when the inventory is created.
func WithStartupItems(items map[tags.Tag]float64) Opt {
	return func(inv *Inventory) {
		inv.startupItems = items
	}
}

// WithBus publishes events to a shared bus instead of a private one.
func WithBus(b *Bus) Opt {
	return func(inv *Inventory) {
		inv.bus = b
	}
}

func WithLogger(l *slog.Logger) Opt {
	return func(inv *Inventory) {
		inv.logger = l
	}
}

// New creates an inventory for owner. owner may be nil, in which case every
// mutating operation is refused until SetOwner is called.
func New(owner Owner, resolver catalog.Resolver, opts ...Opt) *Inventory {
	inv := &Inventory{
		owner:    owner,
		resolver: resolver,
		held:     tagstack.NewContainer(),
		bus:      NewBus(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(inv)
	}

	inv.grantStartupItems()

	return inv
}

func (inv *Inventory) grantStartupItems() {
	if len(inv.startupItems) == 0 {
		return
	}

	items := make([]tags.Tag, 0, len(inv.startupItems))
	for t := range inv.startupItems {
		items = append(items, t)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	for _, t := range items {
		if !inv.AddItemToInventory(t, inv.startupItems[t]) {
			inv.logger.Warn("startup item not granted", "owner", inv.ownerID(), "item", t)
		}
	}
}

func (inv *Inventory) Owner() Owner {
	return inv.owner
}

func (inv *Inventory) SetOwner(o Owner) {
	inv.owner = o
}

func (inv *Inventory) Bus() *Bus {
	return inv.bus
}

// Ledger exposes the underlying stack container for read access by sync
// layers. Mutations should go through the Inventory.
func (inv *Inventory) Ledger() *tagstack.Container {
	return inv.held
}

func (inv *Inventory) ownerID() string {
	if inv.owner == nil {
		return ""
	}
	return inv.owner.ID()
}

func (inv *Inventory) publish(kind EventKind, item tags.Tag, amount float64, dropped bool) {
	inv.bus.Publish(Event{
		Kind:    kind,
		OwnerID: inv.ownerID(),
		Item:    item,
		Amount:  amount,
		Dropped: dropped,
	})
}

// canMutate reports whether an operation on item may proceed, logging why
// not otherwise.
func (inv *Inventory) canMutate(op string, item tags.Tag, amount float64) bool {
	if inv.owner == nil {
		inv.logger.Debug("inventory has no owner", "op", op, "item", item)
		return false
	}
	if !tagstack.ValidAmount(amount) || !item.IsValid() {
		inv.logger.Debug("invalid item request", "op", op, "owner", inv.owner.ID(), "item", item, "amount", amount)
		return false
	}
	return true
}

// AddItemToInventory grants amount of item to the owner.
func (inv *Inventory) AddItemToInventory(item tags.Tag, amount float64) bool {
	if !inv.canMutate("add", item, amount) {
		return false
	}

	inv.held.AddStack(item, amount)
	inv.owner.ItemGranted(item, amount)
	inv.publish(EventGranted, item, amount, false)
	return true
}

// UseItemFromInventory notifies the owner that item is being used. The
// ledger is left untouched.
func (inv *Inventory) UseItemFromInventory(item tags.Tag, amount float64) bool {
	if !inv.canMutate("use", item, amount) || !inv.IsItemInInventory(item) {
		return false
	}

	inv.owner.ItemUsed(item, amount)
	inv.publish(EventUsed, item, amount, false)
	return true
}

// DropItemFromInventory drops amount of item if at least that much is held.
func (inv *Inventory) DropItemFromInventory(item tags.Tag, amount float64) bool {
	if !inv.canMutate("drop", item, amount) || !inv.ContainsItemInInventory(item, amount) {
		return false
	}

	inv.held.RemoveStack(item, amount)
	inv.owner.ItemDropped(item, amount)
	inv.publish(EventRemoved, item, amount, true)
	return true
}

// DropAllItemsFromInventory drops every held stack, then tells the owner the
// drop-all completed. Nothing happens for an empty inventory.
func (inv *Inventory) DropAllItemsFromInventory() bool {
	if inv.owner == nil {
		return false
	}

	held := inv.held.GetGameplayTagStackList()
	if len(held) == 0 {
		return false
	}

	for _, s := range held {
		inv.DropItemFromInventory(s.Tag, s.Count)
	}

	if d, ok := inv.owner.(AllItemsDropper); ok {
		d.AllItemsDropped()
	}
	inv.publish(EventAllDropped, "", 0, true)
	return true
}

// RemoveItemFromInventory removes amount of item. Only presence is checked,
// so removing more than is held simply empties the stack.
func (inv *Inventory) RemoveItemFromInventory(item tags.Tag, amount float64) bool {
	if !inv.canMutate("remove", item, amount) || !inv.IsItemInInventory(item) {
		return false
	}

	inv.held.RemoveStack(item, amount)
	inv.owner.ItemRemoved(item, amount)
	inv.publish(EventRemoved, item, amount, false)
	return true
}

// RemoveAllItemsFromInventory removes every held stack one by one so the
// owner sees each removal.
func (inv *Inventory) RemoveAllItemsFromInventory() {
	for _, s := range inv.held.GetGameplayTagStackList() {
		inv.RemoveItemFromInventory(s.Tag, s.Count)
	}
}

// ClearInventory empties the ledger without owner callbacks or events.
func (inv *Inventory) ClearInventory() {
	inv.held.ClearStack()
}

func (inv *Inventory) IsItemInInventory(item tags.Tag) bool {
	return inv.held.ContainsTag(item)
}

// ContainsItemInInventory reports whether at least amount of item is held.
func (inv *Inventory) ContainsItemInInventory(item tags.Tag, amount float64) bool {
	return inv.held.ContainsTag(item) && inv.held.GetStackCount(item) >= amount
}

// GetItemStack returns the held count of item, or zero.
func (inv *Inventory) GetItemStack(item tags.Tag) float64 {
	return inv.held.GetStackCount(item)
}

func (inv *Inventory) GetAllItemsOnInventory() map[tags.Tag]float64 {
	held := inv.held.GetGameplayTagStackList()
	out := make(map[tags.Tag]float64, len(held))
	for _, s := range held {
		out[s.Tag] = s.Count
	}
	return out
}

func (inv *Inventory) GetTotalAmountItems() float64 {
	return inv.held.Total()
}

// Stacks returns a copy of the held stacks in the order they were acquired.
func (inv *Inventory) Stacks() []tagstack.Stack {
	return inv.held.GetGameplayTagStackList()
}

// BindEventToItemUpdated calls fn whenever the stack for item changes.
func (inv *Inventory) BindEventToItemUpdated(item tags.Tag, fn tagstack.StackFunc) tagstack.Handle {
	return inv.held.BindToStack(item, fn)
}

// BindEventToItemTagStackUpdated calls fn whenever any stack changes.
func (inv *Inventory) BindEventToItemTagStackUpdated(fn tagstack.StackFunc) tagstack.Handle {
	return inv.held.BindToAnyStack(fn)
}

func (inv *Inventory) UnbindItemEvent(h tagstack.Handle) bool {
	return inv.held.Unbind(h)
}
