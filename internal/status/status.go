// Package status provides a thread-safe status tracker for the watch
// daemon. It is read by HTTP handlers and embedded in system telemetry.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs     int64
	IdlePollMs int64
	DebounceMs int64
	PinLED     int
	PinButton  int
	Broker     string
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Clock          string // current wall-clock reading, e.g. "05:43 PM"
	SchedulerState string
	Presses        int    // button presses serviced
	Displays       int    // pulse sequences completed
	LastDisplayed  string // reading most recently played on the LED
	LastDisplayAt  time.Time
	StartTime      time.Time
	Now            time.Time
	MQTTConnected  bool
	Config         Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime:      startTime,
			SchedulerState: "IDLE",
			Config:         cfg,
		},
	}
}

// SetClock records the current wall-clock reading.
// Called from the tick goroutine once per second.
func (t *Tracker) SetClock(reading string) {
	t.mu.Lock()
	t.snap.Clock = reading
	t.mu.Unlock()
}

// SetSchedulerState records the display loop's phase.
func (t *Tracker) SetSchedulerState(state string) {
	t.mu.Lock()
	t.snap.SchedulerState = state
	t.mu.Unlock()
}

// RecordPress counts a serviced press and the reading being played.
func (t *Tracker) RecordPress(at time.Time, shown string) {
	t.mu.Lock()
	t.snap.Presses++
	t.snap.LastDisplayed = shown
	t.snap.LastDisplayAt = at
	t.mu.Unlock()
}

// RecordDisplay counts a completed pulse sequence.
func (t *Tracker) RecordDisplay(at time.Time) {
	t.mu.Lock()
	t.snap.Displays++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
