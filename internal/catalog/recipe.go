package catalog

import (
	"math"
	"sort"

	"github.com/pixil98/go-inventory/internal/tags"
)

// Recipe lists what crafting an item consumes and how many are produced.
// The zero Recipe has no ingredients and is never craftable.
type Recipe struct {
	Ingredients     map[tags.Tag]float64
	CraftedQuantity float64
}

// Ingredient is a single recipe requirement.
type Ingredient struct {
	Tag    tags.Tag
	Amount float64
}

func (r Recipe) IsEmpty() bool {
	return len(r.Ingredients) == 0
}

// SortedIngredients returns the ingredients ordered by tag so consumption
// and its notifications happen in a stable order.
func (r Recipe) SortedIngredients() []Ingredient {
	out := make([]Ingredient, 0, len(r.Ingredients))
	for tag, amount := range r.Ingredients {
		out = append(out, Ingredient{Tag: tag, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// StockFunc reports how much of an item is currently held.
type StockFunc func(tags.Tag) float64

// IsCraftable reports whether stock covers every ingredient. A recipe with no
// ingredients is never craftable.
func IsCraftable(r Recipe, stock StockFunc) bool {
	if r.IsEmpty() {
		return false
	}
	for _, in := range r.SortedIngredients() {
		if stock(in.Tag) < in.Amount {
			return false
		}
	}
	return true
}

// MaxCraftLimit caps MaxCraftable so huge stocks never overflow an int.
const MaxCraftLimit = math.MaxInt32

// MaxCraftable returns how many times the recipe could be crafted from stock:
// the smallest floor(held/required) across ingredients, capped at
// MaxCraftLimit.
func MaxCraftable(r Recipe, stock StockFunc) int {
	if !IsCraftable(r, stock) {
		return 0
	}

	best := float64(MaxCraftLimit)
	for _, in := range r.SortedIngredients() {
		best = math.Min(best, math.Floor(stock(in.Tag)/in.Amount))
	}
	return int(best)
}
