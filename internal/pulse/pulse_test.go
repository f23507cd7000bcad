package pulse

import (
	"testing"
	"time"
)

func TestEncodeNoonOnTheHour(t *testing.T) {
	groups := Encode(12, 0)
	if len(groups) != 1 {
		t.Fatalf("expected exactly 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Count != 12 {
		t.Errorf("expected 12 pulses, got %d", g.Count)
	}
	if g.On != 1000*time.Millisecond || g.Off != 500*time.Millisecond {
		t.Errorf("expected 1000ms on / 500ms off, got %v / %v", g.On, g.Off)
	}
}

func TestEncodeOneThirtySeven(t *testing.T) {
	groups := Encode(1, 37)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	want := []Group{
		{Count: 1, On: 1000 * time.Millisecond, Off: 500 * time.Millisecond},
		{Count: 2, On: 500 * time.Millisecond, Off: 500 * time.Millisecond},
		{Count: 7, On: 250 * time.Millisecond, Off: 500 * time.Millisecond},
	}
	for i, g := range groups {
		if g != want[i] {
			t.Errorf("group %d: got %+v, want %+v", i, g, want[i])
		}
	}

	if n := Pulses(groups); n != 10 {
		t.Errorf("expected 10 pulses total, got %d", n)
	}
}

func TestEncodeSkipsZeroGroups(t *testing.T) {
	// 5:00 -> only the hour group; no quarters, no remainder.
	groups := Encode(5, 0)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Count != 5 {
		t.Errorf("expected 5 pulses, got %d", groups[0].Count)
	}

	// 3:05 -> hour + remainder, quarter group skipped.
	groups = Encode(3, 5)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[1].Count != 5 || groups[1].On != 250*time.Millisecond {
		t.Errorf("expected remainder group of 5x250ms, got %+v", groups[1])
	}

	// 9:45 -> hour + quarters, remainder skipped.
	groups = Encode(9, 45)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[1].Count != 3 || groups[1].On != 500*time.Millisecond {
		t.Errorf("expected quarter group of 3x500ms, got %+v", groups[1])
	}
}

func TestEncodeIdempotent(t *testing.T) {
	a := Encode(7, 52)
	b := Encode(7, 52)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("group %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStepsSingleGroupNoTrailingPause(t *testing.T) {
	steps := Steps(Encode(2, 0))
	want := []Step{
		{On: true, Wait: 1000 * time.Millisecond},
		{On: false, Wait: 500 * time.Millisecond},
		{On: true, Wait: 1000 * time.Millisecond},
		{On: false},
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d: %+v", len(want), len(steps), steps)
	}
	for i, s := range steps {
		if s != want[i] {
			t.Errorf("step %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestStepsPauseOnlyBetweenGroups(t *testing.T) {
	steps := Steps(Encode(1, 16)) // 1 hour pulse, 1 quarter pulse, 1 remainder pulse
	want := []Step{
		{On: true, Wait: 1000 * time.Millisecond},
		{On: false, Wait: 1000 * time.Millisecond}, // pause, another group follows
		{On: true, Wait: 500 * time.Millisecond},
		{On: false, Wait: 1000 * time.Millisecond}, // pause, another group follows
		{On: true, Wait: 250 * time.Millisecond},
		{On: false}, // final flash: off, no pause
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d: %+v", len(want), len(steps), steps)
	}
	for i, s := range steps {
		if s != want[i] {
			t.Errorf("step %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestStepsEndDrivenLow(t *testing.T) {
	for minute := 0; minute < 60; minute++ {
		for hour := 1; hour <= 12; hour++ {
			steps := Steps(Encode(hour, minute))
			if len(steps) == 0 {
				t.Fatalf("%d:%02d: empty sequence", hour, minute)
			}
			if last := steps[len(steps)-1]; last.On {
				t.Errorf("%d:%02d: sequence ends with LED on", hour, minute)
			}
		}
	}
}

func TestDuration(t *testing.T) {
	// 2:00 -> on 1000, gap 500, on 1000 = 2500ms.
	if d := Duration(Encode(2, 0)); d != 2500*time.Millisecond {
		t.Errorf("2:00: expected 2500ms, got %v", d)
	}
	// 1:16 -> 1000 + 1000 + 500 + 1000 + 250 = 3750ms.
	if d := Duration(Encode(1, 16)); d != 3750*time.Millisecond {
		t.Errorf("1:16: expected 3750ms, got %v", d)
	}
}
