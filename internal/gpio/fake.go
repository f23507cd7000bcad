package gpio

import "sync"

// FakeLED is a test double recording every level written to the line.
type FakeLED struct {
	mu sync.Mutex

	// Writes contains every level passed to Set, in order.
	Writes []bool

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeLED creates a FakeLED.
func NewFakeLED() *FakeLED {
	return &FakeLED{}
}

// Set records the level.
func (l *FakeLED) Set(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.SetError != nil {
		return l.SetError
	}
	l.Writes = append(l.Writes, on)
	return nil
}

// On reports the last level written (false if none).
func (l *FakeLED) On() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Writes) == 0 {
		return false
	}
	return l.Writes[len(l.Writes)-1]
}

// History returns a copy of all recorded writes.
func (l *FakeLED) History() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]bool, len(l.Writes))
	copy(out, l.Writes)
	return out
}

// Close marks the LED as closed.
func (l *FakeLED) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Closed = true
	return nil
}

// FakeButton is a test double simulating the button line. Press and Release
// set the level; Press fires the registered handler synchronously when edge
// detection is enabled, mimicking a falling-edge event.
type FakeButton struct {
	mu      sync.Mutex
	level   bool // true = held down
	enabled bool
	handler func()

	// EnableCount and DisableCount track arming churn.
	EnableCount  int
	DisableCount int

	// Closed tracks if Close was called.
	Closed bool

	// PressedError, if set, will be returned by Pressed.
	PressedError error
}

// NewFakeButton creates a FakeButton, released and disabled.
func NewFakeButton() *FakeButton {
	return &FakeButton{}
}

// Pressed reports the simulated level.
func (b *FakeButton) Pressed() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.PressedError != nil {
		return false, b.PressedError
	}
	return b.level, nil
}

// Enable registers the handler and arms edge delivery.
func (b *FakeButton) Enable(h func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = h
	b.enabled = true
	b.EnableCount++
	return nil
}

// Disable drops the handler and disarms edge delivery.
func (b *FakeButton) Disable() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = nil
	b.enabled = false
	b.DisableCount++
	return nil
}

// Close marks the button as closed.
func (b *FakeButton) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Closed = true
	return nil
}

// Enabled reports whether edge delivery is armed.
func (b *FakeButton) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Press drives the level down and, if armed, delivers the falling edge to
// the handler on the caller's goroutine.
func (b *FakeButton) Press() {
	b.mu.Lock()
	b.level = true
	h := b.handler
	enabled := b.enabled
	b.mu.Unlock()
	if enabled && h != nil {
		h()
	}
}

// Release drives the level back up. No edge is delivered; only falling
// edges are watched.
func (b *FakeButton) Release() {
	b.mu.Lock()
	b.level = false
	b.mu.Unlock()
}

// Bounce delivers a falling edge without leaving the line held down,
// simulating electrical noise: the handler fires but a resample reads
// released.
func (b *FakeButton) Bounce() {
	b.mu.Lock()
	b.level = false
	h := b.handler
	enabled := b.enabled
	b.mu.Unlock()
	if enabled && h != nil {
		h()
	}
}
