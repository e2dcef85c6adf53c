package messaging

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/inventory"
)

const (
	OpenSubject   = "inventory.open"
	CloseSubject  = "inventory.close"
	OwnersSubject = "inventory.owners"

	// requestWildcard matches every owner's request subject.
	requestWildcard = "inventory.*.request"
)

func EventSubject(owner string, kind inventory.EventKind) string {
	return fmt.Sprintf("inventory.%s.events.%s", owner, kind)
}

func SnapshotSubject(owner string) string {
	return fmt.Sprintf("inventory.%s.snapshot", owner)
}

func RequestSubject(owner string) string {
	return fmt.Sprintf("inventory.%s.request", owner)
}

// PlayerSubject is where player-facing notification text is delivered.
func PlayerSubject(owner string) string {
	return fmt.Sprintf("player.%s", owner)
}
