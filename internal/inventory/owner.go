package inventory

import "github.com/pixil98/go-inventory/internal/tags"

// Owner is the capability an inventory's owning entity implements to react
// to item changes. An inventory without an Owner refuses every mutation.
type Owner interface {
	ID() string

	// ItemGranted is called after an item was added.
	ItemGranted(item tags.Tag, amount float64)

	// ItemUsed is called when an item is used. Using an item does not change
	// the inventory; consuming it is up to the owner.
	ItemUsed(item tags.Tag, amount float64)

	// ItemRemoved is called after an item was removed.
	ItemRemoved(item tags.Tag, amount float64)

	// ItemDropped is called after an item was dropped. ItemRemoved is not
	// called for drops.
	ItemDropped(item tags.Tag, amount float64)

	// ItemCrafted is called after a craft produced amount of item.
	ItemCrafted(item tags.Tag, amount float64)
}

// AllItemsDropper is optionally implemented by an Owner that wants to know
// when a drop-all finished.
type AllItemsDropper interface {
	AllItemsDropped()
}

// RecipeConsumer is optionally implemented by an Owner that wants to know
// when a recipe's ingredients were consumed without crafting.
type RecipeConsumer interface {
	ItemRecipeConsumed(item tags.Tag)
}
