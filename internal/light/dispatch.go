package light

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tingelabs/tinge/internal/colour"
)

// DefaultTimeout bounds a single per-target actuator call when the caller
// does not supply one.
const DefaultTimeout = 5 * time.Second

// DispatchOptions control one apply operation.
type DispatchOptions struct {
	// Transition is how long the light fades to the new colour.
	Transition time.Duration

	// Timeout bounds each per-target actuator call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Dispatcher applies colour maps to groups of targets with per-target
// failure isolation: unreachable or unsupported targets are reported, never
// fatal to the batch.
type Dispatcher struct {
	actuator Actuator
	logger   hclog.Logger
}

// NewDispatcher creates a Dispatcher over the given actuator.
func NewDispatcher(actuator Actuator, logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{
		actuator: actuator,
		logger:   logger.Named("dispatch"),
	}
}

// Apply sends one colour to each target concurrently and waits for every
// call to settle before returning the aggregated report. Capability is
// checked once per target; unsupported targets are recorded without issuing
// a call.
func (d *Dispatcher) Apply(ctx context.Context, targetColors map[string]colour.RGB, opts DispatchOptions) Report {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	outcomes := make([]Outcome, 0, len(targetColors))
	results := make(chan Outcome, len(targetColors))

	var wg sync.WaitGroup
	for target, c := range targetColors {
		wg.Add(1)
		go func(target string, c colour.RGB) {
			defer wg.Done()
			results <- d.applyOne(ctx, target, c, opts.Transition, timeout)
		}(target, c)
	}
	wg.Wait()
	close(results)

	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}

	report := Aggregate(outcomes)
	switch {
	case report.AllFailed() && len(report.Failed) > 0:
		d.logger.Error("no targets updated", "summary", report.Summary())
	case report.Partial():
		d.logger.Warn("some targets failed", "summary", report.Summary())
	default:
		d.logger.Debug("targets updated", "count", len(report.Succeeded))
	}
	return report
}

// applyOne applies a single colour to a single target with a bounded call.
func (d *Dispatcher) applyOne(ctx context.Context, target string, c colour.RGB, transition, timeout time.Duration) Outcome {
	if d.actuator.Support(target) == Unsupported {
		d.logger.Warn("target does not support colour", "target", target)
		return Outcome{
			Target: target,
			Err:    NewFailure(FailureUnsupportedColorMode, "target %q does not support RGB colours", target),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	applied, err := d.actuator.Apply(callCtx, target, c, transition)
	if err != nil {
		failure := AsFailure(err)
		d.logger.Warn("apply failed", "target", target, "kind", failure.Kind, "error", failure.Message)
		return Outcome{Target: target, Err: failure}
	}

	d.logger.Debug("applied colour", "target", target, "colour", c.Hex())
	return Outcome{Target: target, Color: applied}
}
