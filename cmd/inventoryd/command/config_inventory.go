package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/messaging"
	"github.com/pixil98/go-inventory/internal/notify"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

type InventoryConfig struct {
	StartupItems map[tags.Tag]float64 `json:"startup_items"`
	Templates    map[string]string    `json:"templates"`
	MessageWidth int                  `json:"message_width"`
}

func (c *InventoryConfig) validate() error {
	el := errors.NewErrorList()

	for item, amount := range c.StartupItems {
		if !tagstack.ValidAmount(amount) {
			el.Add(fmt.Errorf("startup_items: %s: amount must be positive", item))
		}
	}
	if c.MessageWidth < 0 {
		el.Add(fmt.Errorf("message_width must not be negative"))
	}
	if _, err := notify.NewRenderer(c.Templates); err != nil {
		el.Add(fmt.Errorf("templates: %w", err))
	}

	return el.Err()
}

// BuildOwnerFactory returns a factory of owners that notify their player
// over pub using the configured templates.
func (c *InventoryConfig) BuildOwnerFactory(pub notify.Publisher, names notify.Namer) (messaging.OwnerFactory, error) {
	r, err := notify.NewRenderer(c.Templates)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	opts := []notify.OwnerOpt{notify.WithNamer(names)}
	if c.MessageWidth > 0 {
		opts = append(opts, notify.WithWidth(c.MessageWidth))
	}

	return func(id string) inventory.Owner {
		return notify.NewOwner(id, messaging.PlayerSubject(id), r, pub, opts...)
	}, nil
}
