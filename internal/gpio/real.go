//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

const chipName = "gpiochip0"

// RealLED drives an output line on actual hardware.
type RealLED struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealLED requests the LED pin as an output, initially low.
func NewRealLED(pin int) (*RealLED, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pin, err)
	}

	return &RealLED{chip: chip, line: line}, nil
}

// Set drives the LED line.
func (l *RealLED) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set LED: %w", err)
	}
	return nil
}

// Close drives the LED low and releases the line.
func (l *RealLED) Close() error {
	var errs []error
	if l.line != nil {
		if err := l.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED: %w", err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED line: %w", err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealButton reads the button line and delivers falling-edge events.
//
// The line is requested once with the internal pull-up and a fixed event
// handler; Enable and Disable reconfigure edge detection on and off, so a
// disabled button generates no events at all rather than ignored ones.
// Edge reconfiguration needs GPIO uAPI v2 (kernel 5.10+, fine on Pi OS).
type RealButton struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line

	mu      sync.Mutex
	handler func()
}

// NewRealButton requests the button pin as a pulled-up input with edge
// detection initially off.
func NewRealButton(pin int) (*RealButton, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButton{chip: chip}
	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithEventHandler(b.onEvent))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}
	b.line = line

	return b, nil
}

func (b *RealButton) onEvent(ev gpiocdev.LineEvent) {
	if ev.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	b.mu.Lock()
	h := b.handler
	b.mu.Unlock()
	if h != nil {
		h()
	}
}

// Pressed reports the logical level: raw low = pressed.
func (b *RealButton) Pressed() (bool, error) {
	v, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return v == 0, nil
}

// Enable registers h and arms falling-edge detection.
func (b *RealButton) Enable(h func()) error {
	b.mu.Lock()
	b.handler = h
	b.mu.Unlock()
	if err := b.line.Reconfigure(gpiocdev.WithFallingEdge); err != nil {
		return fmt.Errorf("arm button edge detection: %w", err)
	}
	return nil
}

// Disable removes edge detection from the line.
func (b *RealButton) Disable() error {
	if err := b.line.Reconfigure(gpiocdev.WithoutEdges); err != nil {
		return fmt.Errorf("disarm button edge detection: %w", err)
	}
	b.mu.Lock()
	b.handler = nil
	b.mu.Unlock()
	return nil
}

// Close releases GPIO resources. The pull-up is left configured; the Pi
// reasserts its own boot defaults on reset.
func (b *RealButton) Close() error {
	var errs []error
	if b.line != nil {
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
