package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is ticked once per driver interval.
type Manager interface {
	Tick(context.Context) error
}

// ManagerFunc adapts a function to Manager.
type ManagerFunc func(context.Context) error

func (f ManagerFunc) Tick(ctx context.Context) error {
	return f(ctx)
}

// Driver ticks its managers on a fixed interval until its context ends.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
	stopOnErr  bool
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err == nil {
				continue
			}
			if d.stopOnErr {
				return err
			}
			slog.WarnContext(ctx, "driver tick failed", "error", err)
		}
	}
}

// Tick runs every manager once, stopping at the first error.
func (d *Driver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("manager %d: %w", i, err)
		}
	}
	return nil
}
