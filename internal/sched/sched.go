// Package sched runs the display loop: wait for a button request, play the
// current time on the LED, wait for physical release, re-arm the button.
// The loop is strictly sequential; it yields only at its timed waits. A
// press that arrives while a display is in progress hits a disarmed line
// and is simply lost, by design.
package sched

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/masd01/one-led-watch/internal/button"
	"github.com/masd01/one-led-watch/internal/clock"
	"github.com/masd01/one-led-watch/internal/gpio"
	"github.com/masd01/one-led-watch/internal/pulse"
)

// State names the scheduler's phase.
type State string

const (
	StateIdle         State = "IDLE"
	StateServicing    State = "SERVICING"
	StateAwaitRelease State = "AWAIT_RELEASE"
)

// Config holds the loop timings.
type Config struct {
	// IdlePoll is how often the request flag is checked while idle.
	IdlePoll time.Duration
	// ReleasePoll is how often the raw line is sampled while waiting
	// for the button to be let go.
	ReleasePoll time.Duration
	// ReleaseSettle is the wait after release before re-arming, so a
	// slow finger can't immediately re-trigger.
	ReleaseSettle time.Duration
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		IdlePoll:      100 * time.Millisecond,
		ReleasePoll:   10 * time.Millisecond,
		ReleaseSettle: 50 * time.Millisecond,
	}
}

// Observer receives scheduler lifecycle notifications. Methods run on the
// scheduler goroutine and must return promptly.
type Observer interface {
	// StateChanged reports each phase transition.
	StateChanged(s State)
	// DisplayStarted reports the snapshot about to be played.
	DisplayStarted(at time.Time, snap clock.State, groups []pulse.Group)
	// DisplayFinished reports completion of the pulse sequence.
	DisplayFinished(at time.Time)
}

type nopObserver struct{}

func (nopObserver) StateChanged(State)                                   {}
func (nopObserver) DisplayStarted(time.Time, clock.State, []pulse.Group) {}
func (nopObserver) DisplayFinished(time.Time)                            {}

// Scheduler drives the LED from button requests and the clock.
type Scheduler struct {
	led    gpio.LED
	in     *button.Input
	keeper *clock.Keeper
	cfg    Config
	obs    Observer

	state atomic.Value // State

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Scheduler. obs may be nil.
func New(led gpio.LED, in *button.Input, keeper *clock.Keeper, cfg Config, obs Observer) *Scheduler {
	if obs == nil {
		obs = nopObserver{}
	}
	s := &Scheduler{
		led:    led,
		in:     in,
		keeper: keeper,
		cfg:    cfg,
		obs:    obs,
		now:    time.Now,
		sleep:  sleepCtx,
	}
	s.state.Store(StateIdle)
	return s
}

// State returns the current phase.
func (s *Scheduler) State() State {
	return s.state.Load().(State)
}

func (s *Scheduler) setState(st State) {
	s.state.Store(st)
	s.obs.StateChanged(st)
}

// Run arms the button and loops until ctx is cancelled. Cancellation is
// the only clean exit; any hardware error is returned as fatal. An
// in-progress display is never aborted by a press, only by shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.in.Arm(); err != nil {
		return fmt.Errorf("arm button: %w", err)
	}
	s.setState(StateIdle)

	for {
		if ctx.Err() != nil {
			return nil
		}
		if !s.in.TakeRequest() {
			if s.sleep(ctx, s.cfg.IdlePoll) != nil {
				return nil
			}
			continue
		}
		if err := s.service(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// service runs one request to completion: disarm, snapshot, play, await
// release, re-arm.
func (s *Scheduler) service(ctx context.Context) error {
	s.setState(StateServicing)
	if err := s.in.Disarm(); err != nil {
		return fmt.Errorf("disarm button: %w", err)
	}

	snap := s.keeper.Snapshot()
	groups := pulse.Encode(snap.Hour, snap.Minute)
	s.obs.DisplayStarted(s.now(), snap, groups)

	if err := s.play(ctx, groups); err != nil {
		return err
	}
	s.obs.DisplayFinished(s.now())

	s.setState(StateAwaitRelease)
	if err := s.awaitRelease(ctx); err != nil {
		return err
	}

	if err := s.in.Arm(); err != nil {
		return fmt.Errorf("re-arm button: %w", err)
	}
	s.setState(StateIdle)
	return nil
}

// play drives the LED through the pulse steps. On cancellation the LED is
// forced low before returning.
func (s *Scheduler) play(ctx context.Context, groups []pulse.Group) error {
	for _, st := range pulse.Steps(groups) {
		if err := s.led.Set(st.On); err != nil {
			return fmt.Errorf("drive LED: %w", err)
		}
		if st.Wait == 0 {
			continue
		}
		if err := s.sleep(ctx, st.Wait); err != nil {
			s.led.Set(false)
			return err
		}
	}
	return nil
}

// awaitRelease polls the raw line until it reads released, then holds for
// the settle delay.
func (s *Scheduler) awaitRelease(ctx context.Context) error {
	for {
		pressed, err := s.in.Pressed()
		if err != nil {
			return fmt.Errorf("poll button release: %w", err)
		}
		if !pressed {
			break
		}
		if err := s.sleep(ctx, s.cfg.ReleasePoll); err != nil {
			return err
		}
	}
	return s.sleep(ctx, s.cfg.ReleaseSettle)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
