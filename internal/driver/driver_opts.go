package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

// WithStopOnError makes Start return the first tick error instead of
// logging it and carrying on.
func WithStopOnError() DriverOpt {
	return func(d *Driver) {
		d.stopOnErr = true
	}
}
