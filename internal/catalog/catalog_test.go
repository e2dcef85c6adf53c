package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-inventory/internal/storage"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-testutil"
)

// mockItemStore implements storage.Storer[*Item] for testing
type mockItemStore struct {
	items map[string]*Item
}

func (m *mockItemStore) Get(id string) *Item {
	return m.items[id]
}

func (m *mockItemStore) GetAll() map[string]*Item {
	return m.items
}

func newTestItems() *mockItemStore {
	return &mockItemStore{items: map[string]*Item{
		"Item.Material.Wood":  {Name: "wood", Category: "Category.Material"},
		"Item.Material.Stone": {Name: "stone", Category: "Category.Material"},
		"Item.Tool.Axe":       {Name: "axe", Category: "Category.Tool", MaxStack: 1},
		"Item.Weapon.Sword": {
			Name:      "sword",
			Category:  "Category.Weapon",
			Fragments: storage.Fragments{"weapon": json.RawMessage(`{"damage": 6}`)},
		},
	}}
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		recipes RecipeTable
		expErrs []string
	}{
		"resolves": {
			recipes: RecipeTable{
				"Item.Tool.Axe": {Ingredients: map[tags.Tag]float64{"Item.Material.Wood": 2}, CraftedQuantity: 1},
			},
		},
		"unknown output": {
			recipes: RecipeTable{
				"Item.Tool.Pick": {Ingredients: map[tags.Tag]float64{"Item.Material.Wood": 2}, CraftedQuantity: 1},
			},
			expErrs: []string{"recipe Item.Tool.Pick: output item not found"},
		},
		"unknown ingredient": {
			recipes: RecipeTable{
				"Item.Tool.Axe": {Ingredients: map[tags.Tag]float64{"Item.Material.Iron": 2}, CraftedQuantity: 1},
			},
			expErrs: []string{"ingredient Item.Material.Iron not found"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(newTestItems(), tt.recipes)
			if len(tt.expErrs) > 0 {
				for _, e := range tt.expErrs {
					testutil.AssertErrorContains(t, err, e)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCatalog_Lookups(t *testing.T) {
	axe := Recipe{
		Ingredients:     map[tags.Tag]float64{"Item.Material.Wood": 2, "Item.Material.Stone": 1},
		CraftedQuantity: 1,
	}
	c, err := New(newTestItems(), RecipeTable{"Item.Tool.Axe": axe})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "axe recipe", c.GetItemRecipe("Item.Tool.Axe"), axe)
	testutil.AssertEqual(t, "unknown recipe empty", c.GetItemRecipe("Item.Nope").IsEmpty(), true)
	testutil.AssertEqual(t, "uncraftable item empty", c.GetItemRecipe("Item.Material.Wood").IsEmpty(), true)
	testutil.AssertEqual(t, "recipes", c.Recipes(), []tags.Tag{"Item.Tool.Axe"})

	info, ok := c.GetItemKeyInformationFromTag("Item.Tool.Axe")
	testutil.AssertEqual(t, "info found", ok, true)
	testutil.AssertEqual(t, "info", info, ItemInfo{Tag: "Item.Tool.Axe", Name: "axe", Category: "Category.Tool", MaxStack: 1})

	_, ok = c.GetItemKeyInformationFromTag("Item.Nope")
	testutil.AssertEqual(t, "unknown info", ok, false)

	testutil.AssertEqual(t, "name", c.ItemName("Item.Weapon.Sword"), "sword")
	testutil.AssertEqual(t, "fallback name", c.ItemName("Item.Nope"), "Item.Nope")

	testutil.AssertEqual(t, "materials", c.ItemsInCategory("Category.Material"), []tags.Tag{"Item.Material.Stone", "Item.Material.Wood"})
	testutil.AssertEqual(t, "by tag prefix", c.ItemsInCategory("Item.Tool"), []tags.Tag{"Item.Tool.Axe"})
}

func TestCatalog_GetItemFragment(t *testing.T) {
	c, err := New(newTestItems(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var row struct {
		Damage int `json:"damage"`
	}

	found, err := c.GetItemFragment("Item.Weapon.Sword", "weapon", &row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "damage", row.Damage, 6)

	found, err = c.GetItemFragment("Item.Nope", "weapon", &row)
	testutil.AssertEqual(t, "unknown found", found, false)
	testutil.AssertEqual(t, "unknown err", err, nil)
}

func TestCatalog_FromFileStore(t *testing.T) {
	dir := t.TempDir()
	write := func(id string, item Item) {
		t.Helper()
		data, err := json.Marshal(storage.Asset[*Item]{Version: 1, Identifier: storage.Identifier(id), Spec: &item})
		if err != nil {
			t.Fatalf("failed to marshal asset: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
			t.Fatalf("failed to write asset: %v", err)
		}
	}
	write("Item.Material.Wood", Item{Name: "wood"})
	write("Item.Material.Plank", Item{Name: "plank"})

	store, err := storage.NewFileStore[*Item](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recipes, err := ParseRecipeTable([]byte("Item.Material.Plank:\n  crafted_quantity: 4\n  ingredients:\n    Item.Material.Wood: 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := New(store, recipes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "planks per craft", c.GetItemRecipe("Item.Material.Plank").CraftedQuantity, 4.0)
}
