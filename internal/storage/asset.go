package storage

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/tags"
)

type ValidatingSpec interface {
	Validate() error
}

// Identifier is an asset id. Ids are item tags (e.g. "Item.Weapon.Sword").
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the on-disk envelope for a single catalog record.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier.String()
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if _, err := tags.Parse(a.Id()); err != nil {
		el.Add(fmt.Errorf("id: %w", err))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
