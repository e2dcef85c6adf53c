package inventory

import (
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/tags"
)

const (
	sword       tags.Tag = "Item.Weapon.Sword"
	potion      tags.Tag = "Item.Consumable.Potion"
	ingredientA tags.Tag = "Item.Material.A"
	ingredientB tags.Tag = "Item.Material.B"
	crafted     tags.Tag = "Item.Crafted.Widget"
	uncraftable tags.Tag = "Item.Crafted.Free"
)

// ownerCall records a single Owner callback
type ownerCall struct {
	Method string
	Item   tags.Tag
	Amount float64
}

// mockOwner implements Owner, AllItemsDropper and RecipeConsumer for testing
type mockOwner struct {
	id    string
	calls []ownerCall
}

func newMockOwner() *mockOwner {
	return &mockOwner{id: "player-1"}
}

func (m *mockOwner) ID() string { return m.id }

func (m *mockOwner) record(method string, item tags.Tag, amount float64) {
	m.calls = append(m.calls, ownerCall{Method: method, Item: item, Amount: amount})
}

func (m *mockOwner) ItemGranted(item tags.Tag, amount float64) { m.record("granted", item, amount) }
func (m *mockOwner) ItemUsed(item tags.Tag, amount float64)    { m.record("used", item, amount) }
func (m *mockOwner) ItemRemoved(item tags.Tag, amount float64) { m.record("removed", item, amount) }
func (m *mockOwner) ItemDropped(item tags.Tag, amount float64) { m.record("dropped", item, amount) }
func (m *mockOwner) ItemCrafted(item tags.Tag, amount float64) { m.record("crafted", item, amount) }
func (m *mockOwner) AllItemsDropped()                          { m.record("all_dropped", "", 0) }
func (m *mockOwner) ItemRecipeConsumed(item tags.Tag)          { m.record("recipe_consumed", item, 0) }

func (m *mockOwner) methods() []string {
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Method
	}
	return out
}

// minimalOwner implements only Owner, without the optional callbacks
type minimalOwner struct {
	granted int
}

func (m *minimalOwner) ID() string                    { return "minimal" }
func (m *minimalOwner) ItemGranted(tags.Tag, float64) { m.granted++ }
func (m *minimalOwner) ItemUsed(tags.Tag, float64)    {}
func (m *minimalOwner) ItemRemoved(tags.Tag, float64) {}
func (m *minimalOwner) ItemDropped(tags.Tag, float64) {}
func (m *minimalOwner) ItemCrafted(tags.Tag, float64) {}

// mockResolver implements catalog.Resolver for testing
type mockResolver map[tags.Tag]catalog.Recipe

func (m mockResolver) GetItemRecipe(t tags.Tag) catalog.Recipe {
	return m[t]
}

func newTestResolver() mockResolver {
	return mockResolver{
		crafted: {
			Ingredients:     map[tags.Tag]float64{ingredientA: 2, ingredientB: 1},
			CraftedQuantity: 1,
		},
		uncraftable: {CraftedQuantity: 1},
	}
}

// eventRecorder subscribes to a bus and keeps every event
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func newTestInventory(owner Owner, opts ...Opt) (*Inventory, *eventRecorder) {
	rec := &eventRecorder{}
	inv := New(owner, newTestResolver(), opts...)
	inv.Bus().Subscribe(rec.handle)
	return inv, rec
}
