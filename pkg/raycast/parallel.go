package raycast

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// LinesParallel is Lines with columns split into contiguous chunks cast by
// up to workers goroutines. The result is identical to Lines.
//
// Workers only read the camera and map and each writes its own range of the
// output, so no locking is needed. The camera must not be transformed while
// the call is in progress.
func (e *Engine) LinesParallel(width, height, workers int) ([]Segment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if workers <= 1 || width < 2 {
		return e.Lines(width, height)
	}
	if workers > width {
		workers = width
	}

	segs := make([]Segment, width)
	m, cam := e.m, e.cam
	chunk := (width + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < width; lo += chunk {
		hi := min(lo+chunk, width)
		g.Go(func() error {
			castColumns(m, cam, segs, lo, hi, height)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segs, nil
}
