package inventory

import (
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

func (inv *Inventory) recipeFor(item tags.Tag) (catalog.Recipe, bool) {
	if inv.resolver == nil {
		return catalog.Recipe{}, false
	}
	recipe := inv.resolver.GetItemRecipe(item)
	if !catalog.IsCraftable(recipe, inv.GetItemStack) {
		return catalog.Recipe{}, false
	}
	return recipe, true
}

// consume removes every ingredient of recipe through RemoveItemFromInventory
// so the owner sees each removal.
func (inv *Inventory) consume(recipe catalog.Recipe) {
	for _, in := range recipe.SortedIngredients() {
		inv.RemoveItemFromInventory(in.Tag, in.Amount)
	}
}

// CraftItem consumes the ingredients of item's recipe and grants the
// crafted quantity. Everything that could make the grant fail is checked
// before any ingredient is taken, so a failed craft leaves the inventory
// untouched.
func (inv *Inventory) CraftItem(item tags.Tag) bool {
	if inv.owner == nil {
		inv.logger.Debug("inventory has no owner", "op", "craft", "item", item)
		return false
	}

	recipe, ok := inv.recipeFor(item)
	if !ok {
		return false
	}
	if !tagstack.ValidAmount(recipe.CraftedQuantity) || !item.IsValid() {
		inv.logger.Debug("recipe produces nothing", "owner", inv.owner.ID(), "item", item)
		return false
	}

	inv.consume(recipe)

	if !inv.AddItemToInventory(item, recipe.CraftedQuantity) {
		// Unreachable while the checks above mirror AddItemToInventory's.
		inv.logger.Error("crafted item not granted after consuming ingredients", "owner", inv.ownerID(), "item", item)
		return false
	}

	inv.owner.ItemCrafted(item, recipe.CraftedQuantity)
	inv.publish(EventCrafted, item, recipe.CraftedQuantity, false)
	return true
}

// ConsumeItemRecipe consumes the ingredients of item's recipe without
// producing the item.
func (inv *Inventory) ConsumeItemRecipe(item tags.Tag) bool {
	if inv.owner == nil {
		inv.logger.Debug("inventory has no owner", "op", "consume_recipe", "item", item)
		return false
	}

	recipe, ok := inv.recipeFor(item)
	if !ok {
		return false
	}

	inv.consume(recipe)

	if c, ok := inv.owner.(RecipeConsumer); ok {
		c.ItemRecipeConsumed(item)
	}
	inv.publish(EventRecipeConsumed, item, 0, false)
	return true
}

// CanItemBeCrafted reports whether the held items cover item's recipe.
func (inv *Inventory) CanItemBeCrafted(item tags.Tag) bool {
	_, ok := inv.recipeFor(item)
	return ok
}

// FindMaxCraftableAmount returns how many times item could be crafted from
// the held items.
func (inv *Inventory) FindMaxCraftableAmount(item tags.Tag) int {
	if inv.resolver == nil {
		return 0
	}
	return catalog.MaxCraftable(inv.resolver.GetItemRecipe(item), inv.GetItemStack)
}
