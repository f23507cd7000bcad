package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestFormatDisplayPayload(t *testing.T) {
	event := DisplayEvent{
		Timestamp: time.Date(2026, 3, 14, 17, 43, 12, 0, time.UTC),
		Shown:     "05:43 PM",
		Hours:     5,
		Quarters:  2,
		Minutes:   13,
	}

	data, err := FormatDisplayPayload(event)
	if err != nil {
		t.Fatal(err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	w := payload.Watch
	if w.Timestamp != "2026-03-14T17:43:12Z" {
		t.Errorf("timestamp: got %q", w.Timestamp)
	}
	if w.Event != "DISPLAY" {
		t.Errorf("event: got %q, want DISPLAY", w.Event)
	}
	if w.Time != "05:43 PM" {
		t.Errorf("time: got %q", w.Time)
	}
	if w.Pulses.Hours != 5 || w.Pulses.Quarters != 2 || w.Pulses.Minutes != 13 {
		t.Errorf("pulses: got %+v", w.Pulses)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatal(err)
	}

	var payload SystemPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", payload.System.Event)
	}
	if payload.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", payload.System.Reason)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	data, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "STARTUP",
	})
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["system"]["reason"]; ok {
		t.Error("empty reason should be omitted from JSON")
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"system":{"event":"STARTUP","custom":true}}`)
	data, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := DisplayEvent{Timestamp: time.Now(), Shown: "12:00 AM", Hours: 12}
	if err := f.PublishDisplay(event); err != nil {
		t.Fatal(err)
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatal(err)
	}

	if len(f.DisplayEvents) != 1 || len(f.DisplayPayloads) != 1 {
		t.Errorf("expected 1 display event recorded, got %d/%d",
			len(f.DisplayEvents), len(f.DisplayPayloads))
	}
	if len(f.SystemEvents) != 1 {
		t.Errorf("expected 1 system event recorded, got %d", len(f.SystemEvents))
	}

	f.Close()
	if !f.Closed {
		t.Error("expected Closed after Close")
	}

	f.Reset()
	if len(f.DisplayEvents) != 0 || f.Closed {
		t.Error("Reset did not clear state")
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishDisplayError = errors.New("nope")
	if err := f.PublishDisplay(DisplayEvent{}); err == nil {
		t.Error("expected injected error")
	}
	if len(f.DisplayEvents) != 0 {
		t.Error("failed publish should not be recorded")
	}
}
