package core

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rampTick is the pacing between volume steps. A full-range ramp aims to
// land near the target within about a second.
const rampTick = 100 * time.Millisecond

// VolumeSink is the write side of the audio output's loudness control.
// The concrete player satisfies it.
type VolumeSink interface {
	Volume() (int, error)
	SetVolume(v int) error
}

// RampSteps returns the intermediate loudness values between current and
// target. When they already match it returns nil. The step stride is a
// tenth of the distance (at least one unit), so not every unit is visited
// and the final step lands one unit short of the target.
func RampSteps(current, target int) []int {
	diff := current - target
	if diff == 0 {
		return nil
	}

	distance := diff
	if distance < 0 {
		distance = -distance
	}
	stride := distance / 10
	if stride == 0 {
		stride = 1
	}

	var steps []int
	for i := 1; i < distance; i += stride {
		if diff > 0 {
			steps = append(steps, current-i)
		} else {
			steps = append(steps, current+i)
		}
	}
	return steps
}

// Ramper moves the sink loudness toward a target in the background so a
// slow ramp never delays the next poll. It holds a single ramp slot:
// starting a new ramp cancels the previous one and waits for its goroutine
// to exit before touching the sink again, so two ramps never race on the
// same output.
type Ramper struct {
	tick time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRamper creates a Ramper with the standard 100ms step pacing.
func NewRamper() *Ramper {
	return &Ramper{tick: rampTick}
}

// Start begins ramping the sink from its current loudness to target.
// Any in-flight ramp is cancelled and joined first. The new ramp runs
// until it finishes, ctx is cancelled, or a sink write fails.
func (r *Ramper) Start(ctx context.Context, sink VolumeSink, target int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	current, err := sink.Volume()
	if err != nil {
		return
	}
	steps := RampSteps(current, target)
	if len(steps) == 0 {
		return
	}

	rctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	tick := r.tick
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		limiter := rate.NewLimiter(rate.Every(tick), 1)
		for _, v := range steps {
			if err := limiter.Wait(rctx); err != nil {
				return
			}
			if err := sink.SetVolume(v); err != nil {
				return
			}
		}
	}()
}

// Stop cancels any in-flight ramp and waits for it to exit. Loudness is
// left wherever the ramp had reached; there is no rollback.
func (r *Ramper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Ramper) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}
