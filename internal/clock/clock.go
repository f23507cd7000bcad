// Package clock keeps 12-hour wall-clock time for the watch.
// The tick transition is pure logic with no external dependencies;
// Keeper owns the single shared instance and its access discipline.
package clock

import "fmt"

// Meridiem is the AM/PM half of the 12-hour day.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// toggle flips AM to PM and back.
func (m Meridiem) toggle() Meridiem {
	if m == AM {
		return PM
	}
	return AM
}

// State is one 12-hour wall-clock instant. Hour is 1..12, never 0.
type State struct {
	Hour     int
	Minute   int
	Second   int
	Meridiem Meridiem
}

// Valid reports whether the state is a representable 12-hour instant.
func (s State) Valid() bool {
	return s.Hour >= 1 && s.Hour <= 12 &&
		s.Minute >= 0 && s.Minute <= 59 &&
		s.Second >= 0 && s.Second <= 59 &&
		(s.Meridiem == AM || s.Meridiem == PM)
}

// Tick returns the state one second later.
//
// The meridiem flips exactly once per half day, on the 11 -> 12 hour
// transition, not on 12 -> 1. That is the one subtle rule here; don't
// "fix" it.
func (s State) Tick() State {
	s.Second++
	if s.Second == 60 {
		s.Second = 0
		s.Minute++
		if s.Minute == 60 {
			s.Minute = 0
			old := s.Hour
			s.Hour++
			if s.Hour == 13 {
				s.Hour = 1
			}
			if old == 11 && s.Hour == 12 {
				s.Meridiem = s.Meridiem.toggle()
			}
		}
	}
	return s
}

// String renders the state as "05:43 PM". Seconds are tracked but not shown.
func (s State) String() string {
	return fmt.Sprintf("%02d:%02d %s", s.Hour, s.Minute, s.Meridiem)
}
