package catalog

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/storage"
	"github.com/pixil98/go-inventory/internal/tags"
)

// Item is the asset spec describing a single item type. Assets are stored
// one per file with the item tag as the asset id.
type Item struct {
	// Name is the display name used in notifications.
	Name string `json:"name"`

	// Category groups items for lookups (e.g. "Category.Material").
	Category tags.Tag `json:"category,omitempty"`

	Description string `json:"description,omitempty"`

	// MaxStack is informational for presentation layers; 0 means unlimited.
	MaxStack float64 `json:"max_stack,omitempty"`

	// Fragments carry game specific row data keyed by fragment name.
	Fragments storage.Fragments `json:"fragments,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	if i == nil {
		return fmt.Errorf("item spec is required")
	}

	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Category != "" {
		el.Add(i.Category.Validate())
	}
	if i.MaxStack < 0 {
		el.Add(fmt.Errorf("max_stack cannot be negative"))
	}
	return el.Err()
}

// ItemInfo is the key information about an item.
type ItemInfo struct {
	Tag         tags.Tag `json:"tag"`
	Name        string   `json:"name"`
	Category    tags.Tag `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	MaxStack    float64  `json:"max_stack,omitempty"`
}
