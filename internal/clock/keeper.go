package clock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Keeper owns the live clock state. Exactly one goroutine (the tick loop)
// writes it; readers take value copies via Snapshot, so a displayed time
// stays stable even while the clock advances underneath.
type Keeper struct {
	mu      sync.RWMutex
	state   State
	updated atomic.Bool
}

// NewKeeper creates a Keeper starting at the given instant.
func NewKeeper(start State) (*Keeper, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("invalid start time %02d:%02d:%02d %s",
			start.Hour, start.Minute, start.Second, start.Meridiem)
	}
	return &Keeper{state: start}, nil
}

// Tick advances the clock by one second.
func (k *Keeper) Tick() {
	k.mu.Lock()
	k.state = k.state.Tick()
	k.mu.Unlock()
	k.updated.Store(true)
}

// Snapshot returns a copy of the current state.
func (k *Keeper) Snapshot() State {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.state
}

// Updated reports and clears the "time changed since last asked" hint.
// Informational only; nothing depends on it for correctness.
func (k *Keeper) Updated() bool {
	return k.updated.Swap(false)
}

// Run consumes the tick channel until ctx is cancelled, advancing the clock
// once per tick. Missed ticks are not compensated; the clock tolerates
// drift rather than carrying correction logic. onTick, if non-nil, is
// called with the new state after each advance.
func (k *Keeper) Run(ctx context.Context, tick <-chan time.Time, onTick func(State)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			k.Tick()
			if onTick != nil {
				onTick(k.Snapshot())
			}
		}
	}
}
