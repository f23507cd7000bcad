// Package button turns falling edges on the input line into one-shot
// display requests. Debounce is a single delayed resample: wait out the
// bounce window, confirm the line still reads pressed, then latch the
// request. It trades robustness for simplicity and can mis-trigger on a
// noisy line; that behavior is intentional and pinned by tests.
package button

import (
	"sync/atomic"
	"time"

	"github.com/masd01/one-led-watch/internal/gpio"
)

// DebounceDelay is how long the edge handler waits before resampling the
// line to bridge mechanical bounce.
const DebounceDelay = 20 * time.Millisecond

// Input owns the pending-request flag. The flag has one writer (the edge
// handler, on the GPIO event goroutine) and one consumer (the scheduler),
// and holds at most one request: while a request is being serviced the
// line's edge detection is disarmed outright, so nothing can queue.
type Input struct {
	line    gpio.Button
	pending atomic.Bool
	sleep   func(time.Duration)
}

// New wraps the button line.
func New(line gpio.Button) *Input {
	return &Input{line: line, sleep: time.Sleep}
}

// Arm enables falling-edge detection with the debounce handler.
func (in *Input) Arm() error {
	return in.line.Enable(in.onEdge)
}

// Disarm disables edge detection entirely.
func (in *Input) Disarm() error {
	return in.line.Disable()
}

// TakeRequest reports and clears a pending request in one atomic step, so
// a press is captured exactly once.
func (in *Input) TakeRequest() bool {
	return in.pending.CompareAndSwap(true, false)
}

// Pressed reports the raw line level, for release polling.
func (in *Input) Pressed() (bool, error) {
	return in.line.Pressed()
}

// onEdge runs on the GPIO event goroutine for each falling edge. A read
// error is treated as not pressed; there is no retry path.
func (in *Input) onEdge() {
	in.sleep(DebounceDelay)
	pressed, err := in.line.Pressed()
	if err != nil || !pressed {
		return
	}
	in.pending.Store(true)
}
