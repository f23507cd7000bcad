package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Clock         string     `json:"clock"`
	Scheduler     string     `json:"scheduler"`
	Presses       int        `json:"presses"`
	Displays      int        `json:"displays"`
	LastDisplayed string     `json:"last_displayed,omitempty"`
	LastDisplayAt string     `json:"last_display_at,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs     int64  `json:"tick_ms"`
	IdlePollMs int64  `json:"idle_poll_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	PinLED     int    `json:"pin_led"`
	PinButton  int    `json:"pin_button"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr,omitempty"`
}

func toInner(s Snapshot, event, reason string) StatusInner {
	inner := StatusInner{
		Event:         event,
		Reason:        reason,
		Clock:         s.Clock,
		Scheduler:     s.SchedulerState,
		Presses:       s.Presses,
		Displays:      s.Displays,
		LastDisplayed: s.LastDisplayed,
		UptimeSeconds: int64(s.Uptime().Seconds()),
		StartTime:     s.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     s.Now.UTC().Format(time.RFC3339),
		MQTT: MQTTStatus{
			Connected: s.MQTTConnected,
			Broker:    s.Config.Broker,
		},
		Config: ConfigJSON{
			TickMs:     s.Config.TickMs,
			IdlePollMs: s.Config.IdlePollMs,
			DebounceMs: s.Config.DebounceMs,
			PinLED:     s.Config.PinLED,
			PinButton:  s.Config.PinButton,
			Broker:     s.Config.Broker,
			HTTPAddr:   s.Config.HTTPAddr,
		},
	}
	if !s.LastDisplayAt.IsZero() {
		inner.LastDisplayAt = s.LastDisplayAt.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON renders a snapshot as the status JSON document.
func FormatJSON(s Snapshot) []byte {
	data, err := json.Marshal(StatusJSON{Status: toInner(s, "", "")})
	if err != nil {
		// Snapshot contains only marshalable scalar fields.
		return []byte(`{"status":{}}`)
	}
	return data
}

// FormatStatusEvent renders a snapshot tagged with a lifecycle event, for
// use as a system telemetry payload.
func FormatStatusEvent(s Snapshot, event, reason string) []byte {
	data, err := json.Marshal(StatusJSON{Status: toInner(s, event, reason)})
	if err != nil {
		return []byte(`{"status":{}}`)
	}
	return data
}
