package coverstudio

import "image/color"

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API. All coordinates are canvas-space logical pixels
// unless stated otherwise.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// PatternKind selects how a layer's image fills the canvas.
type PatternKind uint8

const (
	PatternNone     PatternKind = iota // single placement at the layer position
	PatternGrid                        // regular rows and columns
	PatternBrick                       // alternate rows offset by half a step
	PatternDiamonds                    // grid with a constant 45 degree per-tile rotation
	PatternMirror                      // alternate rows flipped 180 degrees
	PatternRandom                      // jittered scatter, full rotation jitter
	PatternSpread                      // jittered scatter, bounded rotation and scale jitter
)

var patternNames = [...]string{"none", "grid", "brick", "diamonds", "mirror", "random", "spread"}

// String returns the lowercase pattern name.
func (p PatternKind) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return "none"
}

// ParsePattern returns the PatternKind for a lowercase pattern name.
// Unknown names map to PatternNone.
func ParsePattern(name string) PatternKind {
	for i, n := range patternNames {
		if n == name {
			return PatternKind(i)
		}
	}
	return PatternNone
}

// Scattered reports whether this pattern kind carries a precomputed
// scatter cache (random and spread) rather than deterministic tiling.
func (p PatternKind) Scattered() bool {
	return p == PatternRandom || p == PatternSpread
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Gesture modifier roles. Kept as named aliases so the bindings read at
// their point of use: Shift extends the selection on press, constrains
// movement to one axis during a move drag, and snaps rotation to 45
// degree steps; Alt switches a corner drag to center-anchored scaling.
const (
	ModMultiSelect  = ModShift
	ModAxisLock     = ModShift
	ModAngleSnap    = ModShift
	ModCenterAnchor = ModAlt
)

// Background is the canvas backdrop painted below all layers.
type Background struct {
	Color       color.RGBA
	Transparent bool // skip the fill entirely (exports keep alpha)
}

// WhiteBackground is the default opaque backdrop.
var WhiteBackground = Background{Color: color.RGBA{255, 255, 255, 255}}

// TransparentBackground leaves the canvas alpha channel untouched.
var TransparentBackground = Background{Transparent: true}

// CanvasPreset is a named logical canvas size.
type CanvasPreset struct {
	Name   string
	Width  int
	Height int
}

// CanvasPresets is the fixed set of selectable canvas sizes.
var CanvasPresets = []CanvasPreset{
	{"square", 1080, 1080},
	{"cover", 1500, 600},
	{"banner", 1640, 664},
	{"portrait", 1080, 1350},
}

// PresetByName returns the canvas preset with the given name.
// Falls back to the first preset for unknown names.
func PresetByName(name string) CanvasPreset {
	for _, p := range CanvasPresets {
		if p.Name == name {
			return p
		}
	}
	return CanvasPresets[0]
}

// ExportMultipliers is the fixed set of output resolution multipliers.
var ExportMultipliers = []int{1, 2, 3}

// Format selects the export raster encoding.
type Format uint8

const (
	FormatPNG  Format = iota // lossless
	FormatJPEG               // lossy, fixed quality
)

// String returns the lowercase format name.
func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ParseFormat returns the Format for "png", "jpg" or "jpeg".
// Unknown names map to FormatPNG.
func ParseFormat(name string) Format {
	if name == "jpeg" || name == "jpg" {
		return FormatJPEG
	}
	return FormatPNG
}

// --- Tuning constants ---

const (
	// DefaultMaxLayers is the hard ceiling on layers per document.
	DefaultMaxLayers = 5

	// MinScale and MaxScale bound every interactive or programmatic
	// scale mutation. Enforced at the point of mutation, never
	// retroactively.
	MinScale = 0.1
	MaxScale = 3.0

	// historyCap bounds the undo history; the oldest entries are
	// evicted first.
	historyCap = 50

	// defaultDragDeadZone is the movement in canvas pixels that
	// distinguishes a drag from a click.
	defaultDragDeadZone = 4.0

	// HandleSize is the grab tolerance around corner and rotation
	// handles, in screen pixels.
	HandleSize = 10.0

	// alphaThreshold is the minimum 8-bit alpha treated as opaque for
	// hit testing.
	alphaThreshold = 8

	// jpegQuality is the fixed quality for lossy exports.
	jpegQuality = 92

	// thumbnailSize is the square edge of the per-layer preview
	// rendered once at creation.
	thumbnailSize = 128
)

// --- Notifications ---

// Severity classifies a user-facing notification.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Note is a discrete user-facing message. Presentation is up to the
// consumer; the document only guarantees one Note per reportable
// condition.
type Note struct {
	Severity Severity
	Text     string
}

// Notifier receives user-facing notifications from a Document.
type Notifier interface {
	Notify(Note)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Note)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Note) { f(n) }
