// Package engine wires palette extraction, gradient synthesis, target
// assignment and the animation manager into the public surface consumed by
// the CLI and any embedding integration.
package engine

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tingelabs/tinge/internal/animation"
	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/image"
	"github.com/tingelabs/tinge/internal/light"
)

// Defaults mirroring the engine's tuning knobs.
const (
	DefaultColorCount = 8
	DefaultSteps      = 10
	DefaultInterval   = 5 * time.Second
	DefaultTransition = 2 * time.Second
)

// ApplyOptions control a static scene application.
type ApplyOptions struct {
	// Targets is the ordered group of light identifiers.
	Targets []string

	// Colors is the palette size to extract. Zero means DefaultColorCount.
	Colors int

	// Algorithm selects the extraction algorithm. Empty means median cut.
	Algorithm colour.Algorithm

	// Transition is how long each light fades to its colour.
	// Zero means DefaultTransition.
	Transition time.Duration

	// Timeout bounds each per-target actuator call.
	Timeout time.Duration
}

// AnimateOptions control a continuous animation.
type AnimateOptions struct {
	Targets   []string
	Colors    int
	Algorithm colour.Algorithm

	// Steps is the number of interpolated frames per palette segment.
	// Zero means DefaultSteps.
	Steps int

	// Interval is the cadence of the tick loop; each light's transition
	// fills exactly this gap. Zero means DefaultInterval.
	Interval time.Duration

	// Sync makes every light show the same frame; otherwise lights are
	// staggered along the path for a travelling-wave effect.
	Sync bool

	Timeout time.Duration
}

// Status is a read-only projection of the engine's observable state,
// refreshed after every static apply and every animation tick.
type Status struct {
	// Scene is the currently applied scene name. It only changes when at
	// least one target succeeded, so a fully failed apply never appears
	// as the current scene.
	Scene string

	// AppliedColors holds the last successfully applied colour per target.
	AppliedColors map[string]colour.RGB

	// FailedTargets maps each currently failing target to its error.
	FailedTargets map[string]string

	// LastError summarises the most recent failures, empty when the last
	// operation fully succeeded.
	LastError string

	// Animating reports whether any animation loop is running.
	Animating bool
}

// Engine is the core colour engine. Safe for concurrent use.
type Engine struct {
	source     image.Source
	dispatcher *light.Dispatcher
	manager    *animation.Manager
	logger     hclog.Logger

	mu     sync.Mutex
	scenes map[string]string // group key -> pending scene name
	status Status
}

// New creates an Engine over the given image source and actuator.
func New(source image.Source, actuator light.Actuator, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	e := &Engine{
		source:     source,
		dispatcher: light.NewDispatcher(actuator, logger),
		logger:     logger.Named("engine"),
		scenes:     make(map[string]string),
		status: Status{
			AppliedColors: make(map[string]colour.RGB),
			FailedTargets: make(map[string]string),
		},
	}
	e.manager = animation.NewManager(e.newController, logger)
	return e
}

// newController builds an animation controller whose tick reports feed this
// engine's status for the given group.
func (e *Engine) newController(key string) *animation.Controller {
	sink := func(report light.Report, err error) {
		e.recordTick(key, report, err)
	}
	return animation.NewController(e.dispatcher, sink, e.logger)
}

// ExtractPalette extracts a colour palette from the referenced image.
func (e *Engine) ExtractPalette(ref string, count int, alg colour.Algorithm) (*colour.Palette, error) {
	if count <= 0 {
		count = DefaultColorCount
	}
	if alg == "" {
		alg = colour.AlgorithmMedianCut
	}

	buf, err := e.source.Pixels(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", ref, err)
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", colour.ErrInvalidImage, err)
	}

	extractor, err := colour.NewExtractor(alg)
	if err != nil {
		return nil, err
	}

	palette, err := extractor.Extract(buf.Image(), count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette from %q: %w", ref, err)
	}

	e.logger.Debug("extracted palette", "image", ref, "colours", palette.Len(), "algorithm", alg)
	return palette, nil
}

// BuildPath builds a cyclic gradient path from a palette.
func (e *Engine) BuildPath(palette *colour.Palette, steps int) (colour.Path, error) {
	if steps <= 0 {
		steps = DefaultSteps
	}
	return colour.BuildPath(palette, steps)
}

// ApplyStatic extracts a palette from the referenced image and applies it to
// the target group as a static scene. Per-target failures are captured in
// the returned report, never as an error; the error covers local failures
// only (bad image, bad parameters).
func (e *Engine) ApplyStatic(ctx context.Context, ref string, opts ApplyOptions) (light.Report, error) {
	palette, err := e.ExtractPalette(ref, opts.Colors, opts.Algorithm)
	if err != nil {
		return light.Report{}, err
	}

	assigned, err := light.Assign(palette.Colors, opts.Targets)
	if err != nil {
		return light.Report{}, err
	}

	transition := opts.Transition
	if transition <= 0 {
		transition = DefaultTransition
	}

	report := e.dispatcher.Apply(ctx, assigned, light.DispatchOptions{
		Transition: transition,
		Timeout:    opts.Timeout,
	})

	e.recordApply(image.SceneName(ref), report)
	return report, nil
}

// StartAnimation extracts a palette, builds the gradient path and starts the
// animation loop for the target group. Starting an already-animating group
// is a no-op.
func (e *Engine) StartAnimation(ref string, opts AnimateOptions) error {
	palette, err := e.ExtractPalette(ref, opts.Colors, opts.Algorithm)
	if err != nil {
		return err
	}

	path, err := e.BuildPath(palette, opts.Steps)
	if err != nil {
		return err
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	key := animation.GroupKey(opts.Targets)
	controller := e.manager.GetOrCreate(key)

	// A running group keeps its scene: Start below is a no-op for it.
	if !controller.Running() {
		e.mu.Lock()
		e.scenes[key] = image.SceneName(ref)
		e.mu.Unlock()
		controller.Timeout = opts.Timeout
	}
	return controller.Start(path, opts.Targets, interval, opts.Sync)
}

// StopAnimation stops the animation for the given target group. When Stop
// returns no further colours are applied to the group's lights.
func (e *Engine) StopAnimation(targets []string) {
	e.manager.Stop(animation.GroupKey(targets))
}

// StopAll stops every running animation. Used at process teardown.
func (e *Engine) StopAll() {
	e.manager.StopAll()
}

// IsAnimating reports whether the given target group is animating.
func (e *Engine) IsAnimating(targets []string) bool {
	return e.manager.IsAnimating(animation.GroupKey(targets))
}

// Status returns a snapshot of the engine's observable state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.status
	snapshot.AppliedColors = maps.Clone(e.status.AppliedColors)
	snapshot.FailedTargets = maps.Clone(e.status.FailedTargets)
	snapshot.Animating = e.manager.AnyRunning()
	return snapshot
}

// recordApply folds a static apply report into the status.
func (e *Engine) recordApply(scene string, report light.Report) {
	e.record(scene, report)
}

// recordTick folds an animation tick report into the status.
func (e *Engine) recordTick(key string, report light.Report, err error) {
	if err != nil {
		e.mu.Lock()
		e.status.LastError = err.Error()
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	scene := e.scenes[key]
	e.mu.Unlock()
	e.record(scene, report)
}

// record applies the status update rule: the displayed scene changes only
// when at least one target succeeded, so a total failure leaves the previous
// scene visible.
func (e *Engine) record(scene string, report light.Report) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(report.Succeeded) > 0 {
		e.status.Scene = scene
	}
	for target, c := range report.Succeeded {
		e.status.AppliedColors[target] = c
		delete(e.status.FailedTargets, target)
	}
	for target, failure := range report.Failed {
		e.status.FailedTargets[target] = failure.Error()
	}

	if report.AllSucceeded() {
		e.status.LastError = ""
	} else {
		e.status.LastError = report.Summary()
	}
}
