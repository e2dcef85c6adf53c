package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/storage"
)

type StorageConfig struct {
	Items   AssetConfig[*catalog.Item] `json:"items"`
	Recipes PathConfig                 `json:"recipes"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Items.Validate("items"))
	el.Add(c.Recipes.Validate("recipes"))
	return el.Err()
}

// BuildCatalog loads the item assets and recipe table and cross checks them.
func (c *StorageConfig) BuildCatalog() (*catalog.Catalog, error) {
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	recipes, err := catalog.LoadRecipeTable(c.Recipes.Path)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	cat, err := catalog.New(items, recipes)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded", "items", len(items.GetAll()), "recipes", len(cat.Recipes()))
	return cat, nil
}

// PathConfig points at a file or directory that must exist.
type PathConfig struct {
	Path string `json:"path"`
}

func (c *PathConfig) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	PathConfig
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
