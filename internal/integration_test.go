package internal

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/masd01/one-led-watch/internal/button"
	"github.com/masd01/one-led-watch/internal/clock"
	"github.com/masd01/one-led-watch/internal/gpio"
	"github.com/masd01/one-led-watch/internal/mqtt"
	"github.com/masd01/one-led-watch/internal/pulse"
)

// TestIntegrationPressToTelemetry drives the full path by hand using
// fakes: a press latches a request, the servicing steps play on the LED,
// and the display event lands in the publisher — the same sequence the
// scheduler performs between its sleeps.
func TestIntegrationPressToTelemetry(t *testing.T) {
	keeper, err := clock.NewKeeper(clock.State{Hour: 5, Minute: 43, Second: 12, Meridiem: clock.PM})
	if err != nil {
		t.Fatal(err)
	}
	led := gpio.NewFakeLED()
	btn := gpio.NewFakeButton()
	in := button.New(btn)
	publisher := mqtt.NewFakePublisher()

	// IDLE: armed and waiting.
	if err := in.Arm(); err != nil {
		t.Fatal(err)
	}
	if in.TakeRequest() {
		t.Fatal("request pending before any press")
	}

	btn.Press()
	if !in.TakeRequest() {
		t.Fatal("press did not latch a request")
	}

	// SERVICING: disarm, snapshot, play.
	if err := in.Disarm(); err != nil {
		t.Fatal(err)
	}
	snap := keeper.Snapshot()
	groups := pulse.Encode(snap.Hour, snap.Minute)
	for _, step := range pulse.Steps(groups) {
		if err := led.Set(step.On); err != nil {
			t.Fatal(err)
		}
	}

	// A press mid-display hits the disarmed line and vanishes.
	btn.Press()
	btn.Release()
	if in.TakeRequest() {
		t.Error("press during servicing latched a request")
	}

	event := mqtt.DisplayEvent{
		Timestamp: time.Date(2026, 3, 14, 17, 43, 12, 0, time.UTC),
		Shown:     snap.String(),
		Hours:     snap.Hour,
		Quarters:  snap.Minute / 15,
		Minutes:   snap.Minute % 15,
	}
	if err := publisher.PublishDisplay(event); err != nil {
		t.Fatal(err)
	}

	// 5:43 -> 5 + 2 + 13 = 20 pulses.
	wantPulses := 20
	if got := pulse.Pulses(groups); got != wantPulses {
		t.Errorf("pulse count: got %d, want %d", got, wantPulses)
	}
	ons := 0
	for _, level := range led.History() {
		if level {
			ons++
		}
	}
	if ons != wantPulses {
		t.Errorf("LED on-writes: got %d, want %d", ons, wantPulses)
	}
	if led.On() {
		t.Error("LED left on after sequence")
	}

	// Telemetry carries the snapshot, not the live clock.
	keeper.Tick()
	if len(publisher.DisplayPayloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(publisher.DisplayPayloads))
	}
	var payload mqtt.Payload
	if err := json.Unmarshal(publisher.DisplayPayloads[0], &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Watch.Time != "05:43 PM" {
		t.Errorf("payload time: got %q, want 05:43 PM", payload.Watch.Time)
	}
	if payload.Watch.Pulses.Hours != 5 || payload.Watch.Pulses.Quarters != 2 || payload.Watch.Pulses.Minutes != 13 {
		t.Errorf("payload pulses: got %+v", payload.Watch.Pulses)
	}

	// AWAIT_RELEASE: line already released, settle, re-arm.
	pressed, err := in.Pressed()
	if err != nil {
		t.Fatal(err)
	}
	if pressed {
		t.Fatal("line should read released")
	}
	if err := in.Arm(); err != nil {
		t.Fatal(err)
	}
	btn.Press()
	if !in.TakeRequest() {
		t.Error("press after re-arm did not latch")
	}
}

// TestIntegrationClockAdvancesDuringDisplay checks that a display uses a
// stable snapshot while the tick goroutine keeps the clock moving.
func TestIntegrationClockAdvancesDuringDisplay(t *testing.T) {
	keeper, err := clock.NewKeeper(clock.State{Hour: 11, Minute: 59, Second: 58, Meridiem: clock.AM})
	if err != nil {
		t.Fatal(err)
	}

	tick := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticked := make(chan clock.State, 4)
	go keeper.Run(ctx, tick, func(s clock.State) { ticked <- s })

	snap := keeper.Snapshot()

	// Two seconds pass mid-display: minute, hour, and meridiem all roll.
	tick <- time.Time{}
	<-ticked
	tick <- time.Time{}
	rolled := <-ticked

	if snap.Hour != 11 || snap.Minute != 59 || snap.Meridiem != clock.AM {
		t.Errorf("snapshot changed under the display: %+v", snap)
	}
	want := clock.State{Hour: 12, Minute: 0, Second: 0, Meridiem: clock.PM}
	if rolled != want {
		t.Errorf("clock after rollover: got %+v, want %+v", rolled, want)
	}

	// The display still encodes the old snapshot.
	groups := pulse.Encode(snap.Hour, snap.Minute)
	if pulse.Pulses(groups) != 11+3+14 {
		t.Errorf("encoded pulses from snapshot: got %d, want 28", pulse.Pulses(groups))
	}
}
