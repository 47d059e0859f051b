package coverstudio

import (
	"math"

	"github.com/google/uuid"
)

// dragKind identifies the pointer state machine's drag states.
type dragKind uint8

const (
	dragNone   dragKind = iota // idle / press without drag semantics
	dragMove                   // moving the whole selection
	dragCorner                 // corner handle: proportional resize
	dragRotate                 // rotation handle
)

// moveStart records one selected layer's position at drag start.
type moveStart struct {
	id  uuid.UUID
	pos Vec2
}

// Controller translates pointer events into Document mutations: press to
// select, drag to move, corner drag to scale, rotation handle to rotate,
// click to enter transform mode. All coordinates are canvas space; the
// Studio converts from screen space through its viewport before calling
// in, and tests call the methods directly.
//
// In-progress drag frames mutate without committing; exactly one history
// entry is committed per completed gesture, and only if the gesture
// changed something.
type Controller struct {
	doc *Document

	// DeadZone is the movement in canvas pixels distinguishing a drag
	// from a click.
	DeadZone float64
	// HandleTolerance is the grab radius around transform handles in
	// canvas pixels. The Studio rescales it with the viewport zoom so
	// the on-screen grab size stays constant.
	HandleTolerance float64

	down    bool
	kind    dragKind
	start   Vec2
	moved   bool
	changed bool

	clickOnActive bool

	targetID      uuid.UUID
	moveStarts    []moveStart
	anchor        Vec2    // opposite corner at press (corner drag)
	anchorDist    float64 // anchor-to-press distance
	centerDist    float64 // center-to-press distance
	startScale    float64
	startPos      Vec2
	startAngle    float64 // radians, center-to-press (rotate drag)
	startRotation float64 // degrees
}

// NewController creates a pointer controller for the document.
func NewController(doc *Document) *Controller {
	return &Controller{
		doc:             doc,
		DeadZone:        defaultDragDeadZone,
		HandleTolerance: HandleSize,
	}
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.down && c.moved && c.kind != dragNone
}

// hitTest returns the topmost layer at the canvas point. Unpatterned
// layers are hit on opaque pixels only; patterned layers by their full
// bounding box.
func (c *Controller) hitTest(x, y float64) *Layer {
	layers := c.doc.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.Fill.Kind != PatternNone {
			if ContainsPoint(l, x, y) {
				return l
			}
		} else if IsPointOnOpaquePixel(l, x, y) {
			return l
		}
	}
	return nil
}

// PointerDown starts a gesture at the canvas point (x, y).
func (c *Controller) PointerDown(x, y float64, mods KeyModifiers) {
	c.reset()
	c.down = true
	c.start = Vec2{x, y}

	// Transform handles first: only reachable with transform mode on
	// and exactly one selected layer.
	if c.doc.TransformMode() {
		if active := c.doc.ActiveLayer(); active != nil {
			switch h := HandleAt(active, x, y, c.HandleTolerance); {
			case h == HandleRotate:
				c.kind = dragRotate
				c.targetID = active.ID
				c.startPos = active.Position
				c.startRotation = active.Rotation
				c.startAngle = math.Atan2(y-active.Position.Y, x-active.Position.X)
				return
			case h != HandleNone:
				c.kind = dragCorner
				c.targetID = active.ID
				corners := BoundingBoxOf(active)
				c.anchor = corners[oppositeCorner(h)]
				c.anchorDist = math.Max(dist(c.start, c.anchor), 1e-6)
				c.centerDist = math.Max(dist(c.start, active.Position), 1e-6)
				c.startScale = active.Scale
				c.startPos = active.Position
				return
			}
		}
	}

	hit := c.hitTest(x, y)
	if hit == nil {
		// Empty canvas: clear selection, exit transform mode.
		c.doc.ClearSelection()
		return
	}

	if mods&ModMultiSelect != 0 {
		// Extend or shrink the selection; never starts a drag.
		c.doc.ToggleSelect(hit.ID)
		return
	}

	c.clickOnActive = c.doc.ActiveLayer() == hit
	if !c.doc.IsSelected(hit.ID) {
		c.doc.SelectOnly(hit.ID)
	}

	c.kind = dragMove
	c.targetID = hit.ID
	c.moveStarts = c.moveStarts[:0]
	for _, l := range c.doc.SelectedLayers() {
		c.moveStarts = append(c.moveStarts, moveStart{l.ID, l.Position})
	}
}

// PointerMove advances an in-progress gesture to the canvas point (x, y).
func (c *Controller) PointerMove(x, y float64, mods KeyModifiers) {
	if !c.down {
		return
	}
	dx := x - c.start.X
	dy := y - c.start.Y
	if !c.moved && math.Sqrt(dx*dx+dy*dy) > c.DeadZone {
		c.moved = true
	}

	switch c.kind {
	case dragMove:
		if !c.moved {
			return
		}
		if mods&ModAxisLock != 0 {
			// Constrain to whichever axis has the larger accumulated
			// delta since drag start, not since the last frame, so the
			// locked axis cannot drift mid-gesture.
			if math.Abs(dx) >= math.Abs(dy) {
				dy = 0
			} else {
				dx = 0
			}
		}
		for _, ms := range c.moveStarts {
			pos := ms.pos.Add(Vec2{dx, dy})
			c.doc.applyLayer(ms.id, func(l *Layer) { l.Position = pos })
		}
		c.changed = true

	case dragCorner:
		p := Vec2{x, y}
		if mods&ModCenterAnchor != 0 {
			// Center-anchored: position stays fixed, only scale changes.
			scale := clampScale(c.startScale * dist(p, c.startPos) / c.centerDist)
			c.doc.applyLayer(c.targetID, func(l *Layer) {
				l.Scale = scale
				l.Position = c.startPos
			})
		} else {
			// Default: scale about the opposite corner so that corner
			// stays fixed on screen.
			scale := clampScale(c.startScale * dist(p, c.anchor) / c.anchorDist)
			ratio := scale / c.startScale
			pos := c.anchor.Add(c.startPos.Sub(c.anchor).Mul(ratio))
			c.doc.applyLayer(c.targetID, func(l *Layer) {
				l.Scale = scale
				l.Position = pos
			})
		}
		c.changed = true

	case dragRotate:
		angle := math.Atan2(y-c.startPos.Y, x-c.startPos.X)
		rot := c.startRotation + (angle-c.startAngle)*180/math.Pi
		if mods&ModAngleSnap != 0 {
			rot = math.Round(rot/45) * 45
		}
		c.doc.applyLayer(c.targetID, func(l *Layer) { l.Rotation = rot })
		c.changed = true
	}
}

// PointerUp finishes the gesture at the canvas point (x, y). A press and
// release within the dead zone on the already-active unpatterned layer
// enters transform mode; any completed drag commits exactly one history
// entry for the whole gesture.
func (c *Controller) PointerUp(x, y float64, mods KeyModifiers) {
	if !c.down {
		return
	}
	if !c.moved && c.kind == dragMove && c.clickOnActive {
		c.doc.EnterTransformMode()
	}
	c.finish()
}

// PointerLeave is treated identically to PointerUp: the current drag is
// finalized, never left orphaned or reverted.
func (c *Controller) PointerLeave() {
	if !c.down {
		return
	}
	c.finish()
}

func (c *Controller) finish() {
	if c.changed {
		c.doc.Commit()
	}
	c.reset()
}

func (c *Controller) reset() {
	c.down = false
	c.kind = dragNone
	c.moved = false
	c.changed = false
	c.clickOnActive = false
	c.targetID = uuid.UUID{}
	c.moveStarts = c.moveStarts[:0]
}

// clampScale bounds a scale value to the legal range.
func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
