package light

import (
	"errors"

	"github.com/tingelabs/tinge/internal/colour"
)

// ErrEmptyColorSet indicates assignment was requested with no colours for a
// non-empty target group.
var ErrEmptyColorSet = errors.New("no colours to assign")

// Assign maps an ordered colour sequence onto an ordered target group.
//
// When there are at least as many colours as targets, target i receives
// colour i (excess colours are unused). When there are fewer colours than
// targets, colours cycle modulo their count so every target gets one.
// Deterministic for the same inputs.
func Assign(colors []colour.RGB, targets []string) (map[string]colour.RGB, error) {
	if len(targets) == 0 {
		return map[string]colour.RGB{}, nil
	}
	if len(colors) == 0 {
		return nil, ErrEmptyColorSet
	}

	assigned := make(map[string]colour.RGB, len(targets))
	for i, target := range targets {
		assigned[target] = colors[i%len(colors)]
	}
	return assigned, nil
}
