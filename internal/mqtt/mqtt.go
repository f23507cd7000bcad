// Package mqtt publishes watch telemetry with abstraction for testing.
// Telemetry is informational only: the watch keeps time and displays it
// whether or not a broker is reachable.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for display events.
const Topic = "home/one-led-watch/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/one-led-watch/system"

// Publisher publishes watch events.
type Publisher interface {
	// PublishDisplay sends a display event to the broker.
	// Returns error if publishing fails (must not crash the process).
	PublishDisplay(event DisplayEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// DisplayEvent describes one serviced button press: the time that was
// played and the pulse counts of each emitted group.
type DisplayEvent struct {
	Timestamp time.Time
	Shown     string // wall-clock reading, e.g. "05:43 PM"
	Hours     int    // hour pulses
	Quarters  int    // quarter-hour pulses
	Minutes   int    // minute-remainder pulses
}

// SystemEvent represents a system lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // whether the broker should retain the message
}

// Payload is the MQTT message envelope for display events.
type Payload struct {
	Watch WatchPayload `json:"watch"`
}

// WatchPayload contains the display event details.
type WatchPayload struct {
	Timestamp string      `json:"timestamp"`
	Event     string      `json:"event"`
	Time      string      `json:"time"`
	Pulses    PulseCounts `json:"pulses"`
}

// PulseCounts is the per-group pulse breakdown.
type PulseCounts struct {
	Hours    int `json:"hours"`
	Quarters int `json:"quarters"`
	Minutes  int `json:"minutes"`
}

// FormatDisplayPayload creates the JSON payload for a display event.
func FormatDisplayPayload(event DisplayEvent) ([]byte, error) {
	payload := Payload{
		Watch: WatchPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     "DISPLAY",
			Time:      event.Shown,
			Pulses: PulseCounts{
				Hours:    event.Hours,
				Quarters: event.Quarters,
				Minutes:  event.Minutes,
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message envelope for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
