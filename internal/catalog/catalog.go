package catalog

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/storage"
	"github.com/pixil98/go-inventory/internal/tags"
)

// Resolver looks up the recipe for an item. Unknown items yield an empty
// recipe.
type Resolver interface {
	GetItemRecipe(tags.Tag) Recipe
}

// Lookup adds item key information to recipe resolution.
type Lookup interface {
	Resolver
	GetItemKeyInformationFromTag(tags.Tag) (ItemInfo, bool)
	GetItemFragment(tag tags.Tag, key string, out any) (bool, error)
	ItemsInCategory(tags.Tag) []tags.Tag
}

var _ Lookup = (*Catalog)(nil)

// Catalog is the process wide item and recipe registry. It is built once and
// never mutated, so it is safe for concurrent use.
type Catalog struct {
	items   map[tags.Tag]*Item
	recipes RecipeTable
}

// New builds a catalog from item assets and a recipe table. Every recipe
// output and ingredient must name a known item.
func New(items storage.Storer[*Item], recipes RecipeTable) (*Catalog, error) {
	c := &Catalog{
		items:   make(map[tags.Tag]*Item),
		recipes: make(RecipeTable, len(recipes)),
	}

	el := errors.NewErrorList()
	for id, item := range items.GetAll() {
		tag, err := tags.Parse(id)
		if err != nil {
			el.Add(fmt.Errorf("item %s: %w", id, err))
			continue
		}
		c.items[tag] = item
	}

	for _, out := range sortedTags(recipes) {
		recipe := recipes[out]
		if _, ok := c.items[out]; !ok {
			el.Add(fmt.Errorf("recipe %s: output item not found", out))
		}
		for _, in := range recipe.SortedIngredients() {
			if _, ok := c.items[in.Tag]; !ok {
				el.Add(fmt.Errorf("recipe %s: ingredient %s not found", out, in.Tag))
			}
		}
		c.recipes[out] = recipe
	}

	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("resolving catalog: %w", err)
	}

	return c, nil
}

// GetItemRecipe returns the recipe for tag or an empty Recipe.
func (c *Catalog) GetItemRecipe(tag tags.Tag) Recipe {
	return c.recipes[tag]
}

// GetItemKeyInformationFromTag returns the key information for an item.
func (c *Catalog) GetItemKeyInformationFromTag(tag tags.Tag) (ItemInfo, bool) {
	item, ok := c.items[tag]
	if !ok {
		return ItemInfo{}, false
	}
	return ItemInfo{
		Tag:         tag,
		Name:        item.Name,
		Category:    item.Category,
		Description: item.Description,
		MaxStack:    item.MaxStack,
	}, true
}

// GetItemFragment decodes the named fragment of an item into out.
func (c *Catalog) GetItemFragment(tag tags.Tag, key string, out any) (bool, error) {
	item, ok := c.items[tag]
	if !ok {
		return false, nil
	}
	return item.Fragments.Get(key, out)
}

// ItemName returns the display name for tag, falling back to the tag itself.
func (c *Catalog) ItemName(tag tags.Tag) string {
	if item, ok := c.items[tag]; ok && item.Name != "" {
		return item.Name
	}
	return tag.String()
}

// ItemsInCategory returns the items whose category, or own tag, falls under
// category.
func (c *Catalog) ItemsInCategory(category tags.Tag) []tags.Tag {
	var out []tags.Tag
	for tag, item := range c.items {
		if tag.MatchesTag(category) || item.Category.MatchesTag(category) {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Recipes returns every craftable output in sorted order.
func (c *Catalog) Recipes() []tags.Tag {
	return sortedTags(c.recipes)
}

func sortedTags[V any](m map[tags.Tag]V) []tags.Tag {
	out := make([]tags.Tag, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
