package driver

import "time"

type GameDriverOpt func(*GameDriver)

func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
