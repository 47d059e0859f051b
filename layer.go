package coverstudio

import "github.com/google/uuid"

// ScatterEntry is one precomputed placement in a scatter cache:
// a canvas-space offset plus rotation and scale jitter applied on top of
// the layer's base transform.
type ScatterEntry struct {
	Offset   Vec2
	Rotation float64 // degrees, added to the layer rotation
	Scale    float64 // multiplier on the layer scale
}

// PatternFill is the tagged variant describing how a layer fills the
// canvas. Tile-based kinds carry no extra data (placements are computed
// at paint time); scatter-based kinds carry the cached scatter list.
// There is no "field present but meaningless" state: scatter is non-nil
// iff Kind is random or spread.
type PatternFill struct {
	Kind    PatternKind
	Spacing float64 // gap (or overlap, if negative) between tiles

	scatter []ScatterEntry
}

// Scatter returns the cached scatter placements. Nil unless Kind is
// random or spread. The returned slice MUST NOT be mutated.
func (f PatternFill) Scatter() []ScatterEntry {
	return f.scatter
}

// LayerState is the snapshot of the transform fields captured at layer
// creation, backing reset-to-original and unmodified checks.
type LayerState struct {
	Scale    float64
	Rotation float64
	Opacity  float64
	Position Vec2
}

// Layer is one placed image with an independent transform and fill.
// Mutate layers only through Document methods so that clamping,
// invariants, and history capture apply.
type Layer struct {
	// ID is the stable identity for the layer's lifetime.
	ID uuid.UUID

	// Source is the shared, immutable decoded raster.
	Source *Source

	Scale    float64 // uniform, clamped to [MinScale, MaxScale] on mutation
	Rotation float64 // degrees, normalized to (-180, 180]
	Opacity  float64 // [0, 1]
	Position Vec2    // canvas-space coordinates of the geometric center

	Fill PatternFill

	initial LayerState
}

// newLayer creates a layer centered on the canvas with an initial scale
// that fits the image inside the canvas without ever upscaling past 1.
func newLayer(src *Source, canvasW, canvasH int) *Layer {
	w, h := src.Size()
	scale := 1.0
	if w > 0 && h > 0 {
		scale = min(1.0, min(float64(canvasW)/float64(w), float64(canvasH)/float64(h)))
	}
	l := &Layer{
		ID:       uuid.New(),
		Source:   src,
		Scale:    scale,
		Opacity:  1,
		Position: Vec2{float64(canvasW) / 2, float64(canvasH) / 2},
	}
	l.initial = l.State()
	return l
}

// State returns the layer's current transform fields.
func (l *Layer) State() LayerState {
	return LayerState{
		Scale:    l.Scale,
		Rotation: l.Rotation,
		Opacity:  l.Opacity,
		Position: l.Position,
	}
}

// InitialState returns the transform fields captured at creation.
func (l *Layer) InitialState() LayerState {
	return l.initial
}

// Unmodified reports whether the layer's transform fields still equal
// the values captured at creation. Used for UI gating of the reset
// operation.
func (l *Layer) Unmodified() bool {
	return l.State() == l.initial
}

// applyState restores transform fields from a state snapshot.
func (l *Layer) applyState(s LayerState) {
	l.Scale = s.Scale
	l.Rotation = s.Rotation
	l.Opacity = s.Opacity
	l.Position = s.Position
}

// clamp enforces the field ranges at the point of mutation: scale to
// [MinScale, MaxScale], opacity to [0, 1], rotation to (-180, 180].
// Out-of-range inputs from any source are silently clamped, never
// rejected.
func (l *Layer) clamp() {
	if l.Scale < MinScale {
		l.Scale = MinScale
	} else if l.Scale > MaxScale {
		l.Scale = MaxScale
	}
	if l.Opacity < 0 {
		l.Opacity = 0
	} else if l.Opacity > 1 {
		l.Opacity = 1
	}
	l.Rotation = normalizeDegrees(l.Rotation)
}
