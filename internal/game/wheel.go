package game

import (
	"fmt"
	"time"
)

const (
	// WheelPush is how much speed one spin adds, up to WheelMaxSpeed.
	WheelPush     = 0.1
	WheelMaxSpeed = 0.5
	// WheelPayInterval is how often a spinning wheel earns a carrot.
	WheelPayInterval = time.Second

	wheelFrame     = time.Second / 60
	wheelFriction  = 0.95
	wheelStopSpeed = 0.01
)

// WheelSpec places a hamster wheel in a world.
type WheelSpec struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

func (w *WheelSpec) Validate() error {
	if w.Radius <= 0 {
		return fmt.Errorf("wheel radius must be positive")
	}
	return nil
}

func (w *WheelSpec) Position() Point {
	return Point{X: w.X, Y: w.Y}
}

// Wheel is a hamster wheel the player can run in. It slows a little every
// frame and pays one carrot per WheelPayInterval while it turns.
type Wheel struct {
	spec    WheelSpec
	speed   float64
	updated time.Time
	paid    time.Time
}

func NewWheel(spec WheelSpec) *Wheel {
	return &Wheel{spec: spec}
}

func (w *Wheel) Spec() WheelSpec {
	return w.spec
}

// Contains reports whether p is inside the wheel.
func (w *Wheel) Contains(p Point) bool {
	return w.spec.Position().Dist(p) < w.spec.Radius
}

func (w *Wheel) Spinning() bool {
	return w.speed > 0
}

func (w *Wheel) Speed() float64 {
	return w.speed
}

// Push speeds the wheel up.
func (w *Wheel) Push(now time.Time) {
	if w.speed == 0 {
		w.updated = now
	}
	w.speed = min(w.speed+WheelPush, WheelMaxSpeed)
}

// Tick runs the wheel forward to now and returns the carrots it earned.
func (w *Wheel) Tick(now time.Time) int {
	if w.speed == 0 {
		w.updated = now
		return 0
	}

	frames := int(now.Sub(w.updated) / wheelFrame)
	if frames <= 0 {
		return 0
	}
	w.updated = w.updated.Add(time.Duration(frames) * wheelFrame)

	for range frames {
		w.speed *= wheelFriction
		if w.speed < wheelStopSpeed {
			w.speed = 0
			break
		}
	}

	if now.Sub(w.paid) < WheelPayInterval {
		return 0
	}
	w.paid = now
	return 1
}
