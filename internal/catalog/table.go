package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
	"gopkg.in/yaml.v3"
)

// RecipeTable maps an output item to the recipe that crafts it.
type RecipeTable map[tags.Tag]Recipe

type recipeRow struct {
	CraftedQuantity float64            `yaml:"crafted_quantity"`
	Ingredients     map[string]float64 `yaml:"ingredients"`
}

// LoadRecipeTable reads a YAML recipe table from path.
//
//	Item.Tool.Axe:
//	  crafted_quantity: 1
//	  ingredients:
//	    Item.Material.Wood: 2
//	    Item.Material.Stone: 1
func LoadRecipeTable(path string) (RecipeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe table: %w", err)
	}

	table, err := ParseRecipeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseRecipeTable decodes and validates a YAML recipe table. All problems
// are reported together.
func ParseRecipeTable(raw []byte) (RecipeTable, error) {
	var rows map[string]recipeRow
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parsing recipe table: %w", err)
	}

	outputs := make([]string, 0, len(rows))
	for out := range rows {
		outputs = append(outputs, out)
	}
	sort.Strings(outputs)

	el := errors.NewErrorList()
	table := make(RecipeTable, len(rows))
	for _, out := range outputs {
		recipe, err := buildRecipe(out, rows[out])
		if err != nil {
			el.Add(fmt.Errorf("recipe %s: %w", out, err))
			continue
		}
		table[tags.Tag(out)] = recipe
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func buildRecipe(out string, row recipeRow) (Recipe, error) {
	el := errors.NewErrorList()

	output, err := tags.Parse(out)
	if err != nil {
		el.Add(err)
	}

	qty := row.CraftedQuantity
	if qty == 0 {
		qty = 1
	} else if !tagstack.ValidAmount(qty) {
		el.Add(fmt.Errorf("crafted_quantity must be positive"))
	}

	if len(row.Ingredients) == 0 {
		el.Add(fmt.Errorf("at least one ingredient is required"))
	}

	ingredients := make(map[tags.Tag]float64, len(row.Ingredients))
	for name, amount := range row.Ingredients {
		tag, err := tags.Parse(name)
		if err != nil {
			el.Add(fmt.Errorf("ingredient: %w", err))
			continue
		}
		if tag == output {
			el.Add(fmt.Errorf("ingredient %s is the recipe output", tag))
		}
		if !tagstack.ValidAmount(amount) {
			el.Add(fmt.Errorf("ingredient %s: amount must be positive", tag))
		}
		ingredients[tag] = amount
	}

	if err := el.Err(); err != nil {
		return Recipe{}, err
	}
	return Recipe{Ingredients: ingredients, CraftedQuantity: qty}, nil
}
