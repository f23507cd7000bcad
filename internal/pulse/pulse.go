// Package pulse encodes an (hour, minute) reading as LED pulse groups.
// This is the display protocol: counts, on/off durations, and the
// skip-if-zero and pause-between-groups rules are the whole user-facing
// contract, so they are pinned exactly.
package pulse

import "time"

// Display protocol timings.
const (
	HourOn      = 1000 * time.Millisecond // hour pulses
	QuarterOn   = 500 * time.Millisecond  // quarter-hour pulses
	RemainderOn = 250 * time.Millisecond  // minute-remainder pulses
	Gap         = 500 * time.Millisecond  // between pulses within a group
	GroupPause  = 1000 * time.Millisecond // between emitted groups
)

// Group is one run of uniform pulses: Count flashes of On duration, with
// Off inserted only between flashes (Count-1 gaps for Count flashes).
type Group struct {
	Count int
	On    time.Duration
	Off   time.Duration
}

// Encode maps an hour and minute to the emitted groups, in display order:
// hours (1-12), quarters (minute/15), then minute remainder (minute%15).
// Groups with a zero count are skipped entirely.
func Encode(hour, minute int) []Group {
	var groups []Group
	if hour > 0 {
		groups = append(groups, Group{Count: hour, On: HourOn, Off: Gap})
	}
	if q := minute / 15; q > 0 {
		groups = append(groups, Group{Count: q, On: QuarterOn, Off: Gap})
	}
	if r := minute % 15; r > 0 {
		groups = append(groups, Group{Count: r, On: RemainderOn, Off: Gap})
	}
	return groups
}

// Step is one timed LED level the player holds: drive the line to On for
// Wait, then move on. A zero Wait just sets the level.
type Step struct {
	On   bool
	Wait time.Duration
}

// Steps expands groups into the playback sequence. Pauses appear only
// between emitted groups, never after the last one, so an on-the-hour
// display ends the moment its final flash does. The sequence always
// leaves the LED driven low.
func Steps(groups []Group) []Step {
	var steps []Step
	for gi, g := range groups {
		for p := 0; p < g.Count; p++ {
			steps = append(steps, Step{On: true, Wait: g.On})
			switch {
			case p < g.Count-1:
				steps = append(steps, Step{On: false, Wait: g.Off})
			case gi < len(groups)-1:
				steps = append(steps, Step{On: false, Wait: GroupPause})
			default:
				steps = append(steps, Step{On: false})
			}
		}
	}
	return steps
}

// Pulses returns the total number of flashes across all groups.
func Pulses(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += g.Count
	}
	return n
}

// Duration returns the wall time the sequence takes to play.
func Duration(groups []Group) time.Duration {
	var d time.Duration
	for _, s := range Steps(groups) {
		d += s.Wait
	}
	return d
}
