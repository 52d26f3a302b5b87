package colour

import "fmt"

// Path is a cyclic sequence of colours interpolated from a palette, suitable
// for smooth continuous animation. Indexing wraps modulo the path length.
type Path []RGB

// Len returns the number of frames in the path.
func (p Path) Len() int {
	return len(p)
}

// At returns the frame at the given cyclic index.
func (p Path) At(i int) RGB {
	return p[i%len(p)]
}

// BuildPath turns an ordered palette into a cyclic gradient path.
//
// For each consecutive palette pair (wrapping last back to first) it inserts
// stepsPerSegment linearly interpolated frames, inclusive of the segment's
// start colour and exclusive of its end colour, which opens the next segment.
// The resulting path has length len(palette) * stepsPerSegment.
//
// An empty palette fails with ErrEmptyPalette. A single-colour palette yields
// a single-frame path; callers must tolerate length 1. stepsPerSegment must
// be at least 1.
func BuildPath(p *Palette, stepsPerSegment int) (Path, error) {
	if p == nil || p.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if stepsPerSegment < 1 {
		return nil, fmt.Errorf("%w: steps per segment must be at least 1, got %d", ErrInvalidParameter, stepsPerSegment)
	}

	if p.Len() == 1 {
		// No interpolation possible.
		return Path{p.Colors[0]}, nil
	}

	path := make(Path, 0, p.Len()*stepsPerSegment)
	for i, current := range p.Colors {
		next := p.Colors[(i+1)%p.Len()]
		for step := 0; step < stepsPerSegment; step++ {
			t := float64(step) / float64(stepsPerSegment)
			path = append(path, current.Lerp(next, t))
		}
	}

	return path, nil
}
