// Package lighttest provides a fake actuator for exercising dispatch,
// animation and engine behaviour without real devices.
package lighttest

import (
	"context"
	"sync"
	"time"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/light"
)

// Call records one Apply invocation.
type Call struct {
	Target     string
	Color      colour.RGB
	Transition time.Duration
}

// FakeActuator implements light.Actuator in memory. The zero value accepts
// every call; failure behaviour is configured per target.
type FakeActuator struct {
	mu sync.Mutex

	// FailWith makes Apply fail for the given targets.
	FailWith map[string]*light.Failure

	// Unsupported marks targets as lacking colour support.
	Unsupported map[string]bool

	// Delay makes every Apply wait before completing, honouring the context.
	Delay time.Duration

	calls []Call
}

// Support reports Unsupported targets, SupportsRGB otherwise.
func (f *FakeActuator) Support(targetID string) light.ColorSupport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Unsupported[targetID] {
		return light.Unsupported
	}
	return light.SupportsRGB
}

// Apply records the call and returns the configured failure, if any.
func (f *FakeActuator) Apply(ctx context.Context, targetID string, c colour.RGB, transition time.Duration) (colour.RGB, error) {
	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return colour.RGB{}, ctx.Err()
		case <-time.After(f.Delay):
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{Target: targetID, Color: c, Transition: transition})
	failure := f.FailWith[targetID]
	f.mu.Unlock()

	if failure != nil {
		return colour.RGB{}, failure
	}
	return c, nil
}

// SetFailure configures or clears (nil) the failure for one target.
// Safe to call while the actuator is in use.
func (f *FakeActuator) SetFailure(targetID string, failure *light.Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith == nil {
		f.FailWith = make(map[string]*light.Failure)
	}
	if failure == nil {
		delete(f.FailWith, targetID)
		return
	}
	f.FailWith[targetID] = failure
}

// Calls returns a copy of all recorded calls.
func (f *FakeActuator) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CallCount returns the total number of recorded calls.
func (f *FakeActuator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CallsFor returns the number of recorded calls for one target.
func (f *FakeActuator) CallsFor(targetID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call.Target == targetID {
			n++
		}
	}
	return n
}

// LastColorFor returns the colour of the most recent call for a target.
func (f *FakeActuator) LastColorFor(targetID string) (colour.RGB, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Target == targetID {
			return f.calls[i].Color, true
		}
	}
	return colour.RGB{}, false
}
