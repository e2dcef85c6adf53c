package command

import (
	"fmt"

	"github.com/pixil98/go-inventory/internal/driver"
	"github.com/pixil98/go-inventory/internal/host"
	"github.com/pixil98/go-inventory/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}

	cat, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	snapshots, err := messaging.NewSnapshotPublisher(natsServer)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot publisher: %w", err)
	}

	inventories := host.NewHost(cat,
		host.WithSnapshotSink(snapshots),
		host.WithStartupItems(cfg.Inventory.StartupItems),
	)
	messaging.NewEventPublisher(natsServer).Attach(inventories.Bus())

	newOwner, err := cfg.Inventory.BuildOwnerFactory(natsServer, cat)
	if err != nil {
		return nil, fmt.Errorf("creating owner factory: %w", err)
	}

	requests, err := messaging.NewRequestServer(natsServer, inventories, newOwner, natsServer.Ready())
	if err != nil {
		return nil, fmt.Errorf("creating request server: %w", err)
	}

	// Setup the driver
	d := driver.NewDriver([]driver.Manager{
		inventories,
	}, driver.WithTickLength(tick))

	return service.WorkerList{
		"nats":     natsServer,
		"requests": requests,
		"driver":   d,
	}, nil
}
