package coverstudio

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim holds active tweens for viewport position and zoom.
type viewAnim struct {
	tweenX   *gween.Tween
	tweenY   *gween.Tween
	tweenZ   *gween.Tween
	doneX    bool
	doneY    bool
	doneZoom bool
}

// Viewport maps between window (screen) space and canvas space for the
// editor shell: pan, zoom, and fit-to-window. It never affects exported
// pixels, only how the canvas is presented.
type Viewport struct {
	// X and Y are the canvas-space position centered in the window.
	X, Y float64
	// Zoom is the screen pixels per canvas pixel (1.0 = 100%).
	Zoom float64
	// WinW and WinH are the window dimensions in screen pixels.
	WinW, WinH float64

	matrix    [6]float64
	invMatrix [6]float64
	dirty     bool

	anim *viewAnim
}

// NewViewport creates a viewport for the given window size at 100% zoom.
func NewViewport(winW, winH float64) *Viewport {
	return &Viewport{Zoom: 1, WinW: winW, WinH: winH, dirty: true}
}

// SetWindowSize updates the window dimensions.
func (v *Viewport) SetWindowSize(w, h float64) {
	if w != v.WinW || h != v.WinH {
		v.WinW = w
		v.WinH = h
		v.dirty = true
	}
}

// Fit centers the canvas in the window at the largest zoom that leaves
// the given margin on all sides, capped at 100%.
func (v *Viewport) Fit(canvasW, canvasH int, margin float64) {
	if canvasW < 1 || canvasH < 1 {
		return
	}
	zoom := math.Min(
		(v.WinW-2*margin)/float64(canvasW),
		(v.WinH-2*margin)/float64(canvasH),
	)
	if zoom > 1 {
		zoom = 1
	}
	if zoom <= 0 {
		zoom = 0.01
	}
	v.X = float64(canvasW) / 2
	v.Y = float64(canvasH) / 2
	v.Zoom = zoom
	v.anim = nil
	v.dirty = true
}

// ZoomTo animates the zoom to the given factor over duration seconds,
// keeping the current center.
func (v *Viewport) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	v.anim = &viewAnim{
		tweenX: gween.New(float32(v.X), float32(v.X), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(v.Y), duration, easeFn),
		tweenZ: gween.New(float32(v.Zoom), float32(zoom), duration, easeFn),
	}
}

// Pan shifts the viewport center by a canvas-space delta, cancelling any
// running animation.
func (v *Viewport) Pan(dx, dy float64) {
	v.X += dx
	v.Y += dy
	v.anim = nil
	v.dirty = true
}

// ScrollTo animates the viewport center to the given canvas position
// over duration seconds.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	v.anim = &viewAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
		tweenZ: gween.New(float32(v.Zoom), float32(v.Zoom), duration, easeFn),
	}
}

// update advances any active animation. Called once per frame.
func (v *Viewport) update(dt float32) {
	if v.anim == nil {
		return
	}
	a := v.anim
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.Y = float64(val)
		a.doneY = done
	}
	if !a.doneZoom {
		val, done := a.tweenZ.Update(dt)
		v.Zoom = float64(val)
		a.doneZoom = done
	}
	v.dirty = true
	if a.doneX && a.doneY && a.doneZoom {
		v.anim = nil
	}
}

// computeMatrix recomputes the cached view matrix if dirty.
//
// matrix = Translate(winCenter) * Scale(zoom) * Translate(-X, -Y)
func (v *Viewport) computeMatrix() [6]float64 {
	if !v.dirty {
		return v.matrix
	}
	v.dirty = false
	cx := v.WinW / 2
	cy := v.WinH / 2
	v.matrix = [6]float64{
		v.Zoom, 0, 0, v.Zoom,
		cx - v.Zoom*v.X,
		cy - v.Zoom*v.Y,
	}
	v.invMatrix = invertAffine(v.matrix)
	return v.matrix
}

// CanvasToScreen converts canvas coordinates to window coordinates.
func (v *Viewport) CanvasToScreen(cx, cy float64) (sx, sy float64) {
	v.computeMatrix()
	return transformPoint(v.matrix, cx, cy)
}

// ScreenToCanvas converts window coordinates to canvas coordinates.
func (v *Viewport) ScreenToCanvas(sx, sy float64) (cx, cy float64) {
	v.computeMatrix()
	return transformPoint(v.invMatrix, sx, sy)
}
