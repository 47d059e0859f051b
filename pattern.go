package coverstudio

import (
	"math"
	"math/rand"
)

// Scatter generation bounds. Random gets full rotation jitter and no
// scale jitter; spread stays close to the base transform for a natural
// scattered look.
const (
	minScatterCount   = 50
	spreadMaxRotation = 35.0 // degrees either way
	spreadMinScale    = 0.85
	spreadMaxScale    = 1.15
)

// tileStep returns the placement step for a layer's tiling: the scaled
// tile size plus spacing, floored at one pixel so a large negative
// spacing can never stall or reverse the tile walk.
func tileStep(l *Layer) (stepX, stepY float64) {
	w, h := l.Source.Size()
	stepX = float64(w)*l.Scale + l.Fill.Spacing
	stepY = float64(h)*l.Scale + l.Fill.Spacing
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}
	return stepX, stepY
}

// scatterCount returns the number of scatter placements for the layer on
// a canvas of the given size: the tile grid count padded by one tile on
// each side, floored at minScatterCount so sparse large tiles still get
// reasonable coverage.
func scatterCount(l *Layer, canvasW, canvasH int) int {
	w, h := l.Source.Size()
	tileW := float64(w) * l.Scale
	tileH := float64(h) * l.Scale
	stepX, stepY := tileStep(l)
	cols := int(math.Ceil((float64(canvasW) + 2*tileW) / stepX))
	rows := int(math.Ceil((float64(canvasH) + 2*tileH) / stepY))
	if n := cols * rows; n > minScatterCount {
		return n
	}
	return minScatterCount
}

// computeScatter produces the scatter cache for a random or spread fill:
// uniformly random positions across the canvas padded by one tile size
// on each side (so edge coverage has no visible gaps), with per-entry
// rotation and scale jitter on top of the layer's base transform.
// Returns nil for every other pattern kind.
//
// Offsets are absolute canvas positions for a layer sitting at the
// canvas center; the renderer shifts the whole field by the layer's
// displacement from center so moving the layer moves the scatter as a
// unit.
func computeScatter(rng *rand.Rand, l *Layer, canvasW, canvasH int) []ScatterEntry {
	if !l.Fill.Kind.Scattered() {
		return nil
	}
	w, h := l.Source.Size()
	tileW := float64(w) * l.Scale
	tileH := float64(h) * l.Scale
	spanX := float64(canvasW) + 2*tileW
	spanY := float64(canvasH) + 2*tileH

	n := scatterCount(l, canvasW, canvasH)
	entries := make([]ScatterEntry, n)
	for i := range entries {
		e := ScatterEntry{
			Offset: Vec2{
				X: rng.Float64()*spanX - tileW,
				Y: rng.Float64()*spanY - tileH,
			},
			Scale: 1,
		}
		if l.Fill.Kind == PatternRandom {
			e.Rotation = rng.Float64() * 360
		} else {
			e.Rotation = (rng.Float64()*2 - 1) * spreadMaxRotation
			e.Scale = spreadMinScale + rng.Float64()*(spreadMaxScale-spreadMinScale)
		}
		entries[i] = e
	}
	return entries
}

// tileAdjust returns the per-tile position offset and extra rotation for
// a deterministic tiling pattern at grid cell (col, row):
//
//	grid     — none
//	brick    — odd rows shifted right by half a step
//	diamonds — every tile rotated a constant 45 degrees
//	mirror   — odd rows flipped 180 degrees
func tileAdjust(kind PatternKind, col, row int, stepX float64) (dx, extraRotation float64) {
	switch kind {
	case PatternBrick:
		if row%2 != 0 {
			dx = stepX / 2
		}
	case PatternDiamonds:
		extraRotation = 45
	case PatternMirror:
		if row%2 != 0 {
			extraRotation = 180
		}
	}
	return dx, extraRotation
}
