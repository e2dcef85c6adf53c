package host

import (
	"log/slog"

	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/tags"
)

type HostOpt func(*Host)

// WithSnapshotSink sets where Tick sends changed ledgers.
func WithSnapshotSink(s SnapshotSink) HostOpt {
	return func(h *Host) {
		h.sink = s
	}
}

// WithStartupItems sets the items granted to every new inventory.
func WithStartupItems(items map[tags.Tag]float64) HostOpt {
	return func(h *Host) {
		h.startupItems = items
	}
}

// WithBus shares an existing event bus instead of creating one.
func WithBus(b *inventory.Bus) HostOpt {
	return func(h *Host) {
		h.bus = b
	}
}

func WithLogger(l *slog.Logger) HostOpt {
	return func(h *Host) {
		h.logger = l
	}
}
