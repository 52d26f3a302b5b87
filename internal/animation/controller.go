// Package animation provides the cancellable colour-animation loop and the
// keyed manager that owns one controller per target group.
package animation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/light"
)

// State is the controller lifecycle state.
type State int

const (
	// StateIdle is both the initial and terminal state.
	StateIdle State = iota

	// StateRunning means the tick loop is live.
	StateRunning

	// StateStopping means Stop has been called and the loop is winding down.
	StateStopping
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sink receives the report of every animation tick. A non-nil error marks a
// terminal fault that stopped the loop; per-target failures inside the
// report are routine and never terminal. The sink is owned by the caller.
type Sink func(report light.Report, err error)

// Controller walks a cyclic colour path at a fixed cadence, dispatching one
// frame per tick to a group of targets. Ticks are strictly sequential: a new
// tick begins only after the previous tick's actuator calls have settled.
type Controller struct {
	dispatcher *light.Dispatcher
	sink       Sink
	logger     hclog.Logger

	// Timeout bounds each per-target actuator call within a tick.
	// Zero means light.DefaultTimeout.
	Timeout time.Duration

	mu     sync.Mutex
	state  State
	cursor int
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController creates a Controller that dispatches through the given
// dispatcher and publishes tick reports to sink.
func NewController(dispatcher *light.Dispatcher, sink Sink, logger hclog.Logger) *Controller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if sink == nil {
		sink = func(light.Report, error) {}
	}
	return &Controller{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger.Named("animation"),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Running reports whether the tick loop is live.
func (c *Controller) Running() bool {
	return c.State() == StateRunning
}

// Cursor returns the current path position.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Start begins the tick loop. Starting a running controller is a no-op: the
// existing loop keeps its cursor and no second loop is spawned.
func (c *Controller) Start(path colour.Path, targets []string, interval time.Duration, syncMode bool) error {
	if path.Len() == 0 {
		return fmt.Errorf("animation path is empty")
	}
	if len(targets) == 0 {
		return fmt.Errorf("animation has no targets")
	}
	if interval <= 0 {
		return fmt.Errorf("animation interval must be positive, got %v", interval)
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		c.logger.Warn("animation already running", "targets", targets)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.state = StateRunning
	c.cursor = 0
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	c.logger.Info("starting animation",
		"targets", len(targets),
		"frames", path.Len(),
		"interval", interval,
		"sync", syncMode,
	)

	go c.loop(ctx, done, path, targets, interval, syncMode)
	return nil
}

// Stop halts the loop. When Stop returns no further actuator calls will be
// issued; calls in flight at the moment of cancellation may complete but
// their results are discarded. Stopping an idle controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.state = StateStopping
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	<-done

	c.mu.Lock()
	c.state = StateIdle
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	c.logger.Info("stopped animation")
}

// loop is the tick loop. It exits when ctx is cancelled or on a terminal
// fault, which is reported through the sink.
func (c *Controller) loop(ctx context.Context, done chan struct{}, path colour.Path, targets []string, interval time.Duration, syncMode bool) {
	defer close(done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		frame, err := c.frameColors(path, targets, syncMode)
		if err != nil {
			c.logger.Error("terminal animation fault", "error", err)
			c.sink(light.Report{}, err)
			c.mu.Lock()
			if c.state == StateRunning {
				c.state = StateIdle
			}
			c.mu.Unlock()
			return
		}

		report := c.dispatcher.Apply(ctx, frame, light.DispatchOptions{
			Transition: interval,
			Timeout:    c.Timeout,
		})

		// Results from a tick that raced a Stop are discarded.
		if ctx.Err() != nil {
			return
		}

		c.mu.Lock()
		c.cursor = (c.cursor + 1) % path.Len()
		c.mu.Unlock()

		c.sink(report, nil)

		// Fixed delay between ticks; the transition above fades each light
		// across exactly this gap, so a tick is one state change rather
		// than a hard cut.
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(interval)

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// frameColors computes each target's colour for the current tick.
//
// In sync mode every target shows the same frame. In staggered mode target i
// is offset along the path by i*floor(len(path)/len(targets)) frames (or 1
// when targets outnumber frames), producing a travelling-wave effect.
func (c *Controller) frameColors(path colour.Path, targets []string, syncMode bool) (map[string]colour.RGB, error) {
	if path.Len() == 0 {
		return nil, fmt.Errorf("animation path is empty")
	}

	c.mu.Lock()
	cursor := c.cursor
	c.mu.Unlock()

	frame := make(map[string]colour.RGB, len(targets))
	if syncMode {
		colorNow := path.At(cursor)
		for _, target := range targets {
			frame[target] = colorNow
		}
		return frame, nil
	}

	offset := path.Len() / len(targets)
	if offset < 1 {
		offset = 1
	}
	for i, target := range targets {
		frame[target] = path.At(cursor + i*offset)
	}
	return frame, nil
}
