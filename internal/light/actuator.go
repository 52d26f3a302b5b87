// Package light provides the actuator boundary, target assignment and
// per-target outcome aggregation for applying colours to groups of lights.
package light

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tingelabs/tinge/internal/colour"
)

// FailureKind classifies why a colour could not be applied to a target.
// All kinds are recoverable at the group level: a failed target never aborts
// a multi-target operation.
type FailureKind string

const (
	// FailureNotFound indicates the target does not exist.
	FailureNotFound FailureKind = "not_found"

	// FailureUnavailable indicates the target exists but cannot be reached.
	FailureUnavailable FailureKind = "unavailable"

	// FailureUnsupportedColorMode indicates the target cannot display RGB colours.
	FailureUnsupportedColorMode FailureKind = "unsupported_color_mode"

	// FailureCallFailed indicates the apply call itself failed.
	FailureCallFailed FailureKind = "call_failed"

	// FailureTimeout indicates the apply call did not settle within its deadline.
	FailureTimeout FailureKind = "timeout"
)

// Failure is a per-target apply error.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure creates a Failure of the given kind.
func NewFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure normalises an error from an actuator call into a *Failure.
// Context deadline errors become FailureTimeout; unknown errors become
// FailureCallFailed.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: FailureTimeout, Message: err.Error()}
	}
	return &Failure{Kind: FailureCallFailed, Message: err.Error()}
}

// ColorSupport describes a target's colour capability, decided once per
// apply call rather than through runtime introspection.
type ColorSupport int

const (
	// SupportsRGB means the target accepts RGB colour commands.
	SupportsRGB ColorSupport = iota

	// Unsupported means the target cannot display colour.
	Unsupported
)

// Actuator accepts colour-apply commands for opaque target identifiers.
// The engine does not know how a target is addressed or what protocol is
// used; implementations report failures as *Failure values.
type Actuator interface {
	// Support reports whether the target can display RGB colours.
	Support(targetID string) ColorSupport

	// Apply sets the target to the given colour, fading over transition.
	// Returns the colour actually applied. The context bounds the call;
	// expiry must surface as a timeout failure.
	Apply(ctx context.Context, targetID string, c colour.RGB, transition time.Duration) (colour.RGB, error)
}
