// Package gpio provides the LED output line and button input line with
// hardware abstraction. The real implementations use the Linux GPIO
// character device; the fakes allow testing without hardware.
package gpio

// Default pin assignments (BCM numbering).
const (
	DefaultPinLED    = 25 // on-board LED
	DefaultPinButton = 2  // momentary button to ground, internal pull-up
)

// LED drives the single output line.
type LED interface {
	// Set drives the line high (on) or low (off).
	Set(on bool) error

	// Close releases the line, leaving it driven low.
	Close() error
}

// Button is the active-low input line.
type Button interface {
	// Pressed reports whether the line currently reads pressed.
	// The raw level is inverted: low means held down (pull-up wiring).
	Pressed() (bool, error)

	// Enable registers h and arms falling-edge detection. h runs on the
	// event delivery goroutine and must not block for long.
	Enable(h func()) error

	// Disable tears edge detection down entirely; edges occurring while
	// disabled are dropped, not queued.
	Disable() error

	// Close releases the line.
	Close() error
}
