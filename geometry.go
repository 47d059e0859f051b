package coverstudio

import "math"

// identityAffine is the identity affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// layerAffine computes the layer's canvas-space affine matrix.
// Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-w/2, -h/2) -> Scale -> Rotate -> Translate(Position)
//
// so the layer's geometric center lands on Position regardless of scale
// and rotation.
func layerAffine(l *Layer) [6]float64 {
	w, h := l.Source.Size()
	s := l.Scale
	sin, cos := math.Sincos(l.Rotation * math.Pi / 180)

	// Scale * Translate(-w/2, -h/2), then Translate(Position) * Rotate.
	center := [6]float64{s, 0, 0, s, -float64(w) / 2 * s, -float64(h) / 2 * s}
	place := [6]float64{cos, sin, -sin, cos, l.Position.X, l.Position.Y}
	return multiplyAffine(place, center)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~= 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformVec applies an affine matrix to a Vec2.
func transformVec(m [6]float64, v Vec2) Vec2 {
	x, y := transformPoint(m, v.X, v.Y)
	return Vec2{x, y}
}

// normalizeDegrees maps an angle in degrees into (-180, 180].
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// BoundingBoxOf returns the four canvas-space corners of the layer's
// nominal rectangle, in order top-left, top-right, bottom-right,
// bottom-left.
func BoundingBoxOf(l *Layer) [4]Vec2 {
	w, h := l.Source.Size()
	return cornersThrough(l, Rect{0, 0, float64(w), float64(h)})
}

// VisualBoundsOf returns the four canvas-space corners of the layer's
// opaque-content rectangle: the tightest image-space rect containing any
// pixel with alpha > 0 (full image rect for fully transparent sources),
// mapped through the same transform as BoundingBoxOf. A layer's visual
// weight for alignment purposes ignores transparent padding.
func VisualBoundsOf(l *Layer) [4]Vec2 {
	r := l.Source.OpaqueRect()
	return cornersThrough(l, Rect{
		float64(r.Min.X), float64(r.Min.Y),
		float64(r.Dx()), float64(r.Dy()),
	})
}

// cornersThrough maps the corners of an image-space rect through the
// layer transform, TL, TR, BR, BL.
func cornersThrough(l *Layer, r Rect) [4]Vec2 {
	m := layerAffine(l)
	return [4]Vec2{
		transformVec(m, Vec2{r.X, r.Y}),
		transformVec(m, Vec2{r.X + r.Width, r.Y}),
		transformVec(m, Vec2{r.X + r.Width, r.Y + r.Height}),
		transformVec(m, Vec2{r.X, r.Y + r.Height}),
	}
}

// aabbOf returns the axis-aligned bounding rect of four points.
func aabbOf(c [4]Vec2) Rect {
	minX, maxX := c[0].X, c[0].X
	minY, maxY := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// VisualAABB returns the axis-aligned canvas-space bounds of the layer's
// opaque content. This is the rectangle the alignment operations work on.
func VisualAABB(l *Layer) Rect {
	return aabbOf(VisualBoundsOf(l))
}

// localPoint inverse-transforms a canvas point into image pixel space.
func localPoint(l *Layer, x, y float64) (float64, float64) {
	inv := invertAffine(layerAffine(l))
	return transformPoint(inv, x, y)
}

// ContainsPoint reports whether the canvas point (x, y) falls inside the
// layer's nominal rectangle. This is the hit region for patterned layers,
// which are not hit-tested per pixel.
func ContainsPoint(l *Layer, x, y float64) bool {
	lx, ly := localPoint(l, x, y)
	w, h := l.Source.Size()
	return lx >= 0 && lx <= float64(w) && ly >= 0 && ly <= float64(h)
}

// IsPointOnOpaquePixel reports whether the canvas point (x, y) lands on
// an effectively opaque pixel of the layer. Patterned layers always
// return false here; their full bounding box governs hit testing instead.
func IsPointOnOpaquePixel(l *Layer, x, y float64) bool {
	if l.Fill.Kind != PatternNone {
		return false
	}
	lx, ly := localPoint(l, x, y)
	w, h := l.Source.Size()
	if lx < 0 || lx >= float64(w) || ly < 0 || ly >= float64(h) {
		return false
	}
	return l.Source.AlphaAt(int(lx), int(ly)) > alphaThreshold
}

// HandleKind identifies a transform handle on the active layer.
type HandleKind uint8

const (
	HandleNone        HandleKind = iota
	HandleTopLeft                // corner indices match BoundingBoxOf order
	HandleTopRight
	HandleBottomRight
	HandleBottomLeft
	HandleRotate // midpoint of the top edge
)

// oppositeCorner returns the bounding-box index of the corner diagonally
// opposite the given corner handle.
func oppositeCorner(h HandleKind) int {
	// TL<->BR, TR<->BL
	return (int(h-HandleTopLeft) + 2) % 4
}

// CornerAndRotationHandles returns the canvas-space positions of the four
// corner handles (TL, TR, BR, BL) plus the rotation handle at the
// midpoint of the top edge.
func CornerAndRotationHandles(l *Layer) (corners [4]Vec2, rotate Vec2) {
	corners = BoundingBoxOf(l)
	rotate = Vec2{
		(corners[0].X + corners[1].X) / 2,
		(corners[0].Y + corners[1].Y) / 2,
	}
	return corners, rotate
}

// HandleAt returns the handle within tolerance pixels of the canvas point
// (x, y), or HandleNone. The rotation handle wins ties with corners.
func HandleAt(l *Layer, x, y, tolerance float64) HandleKind {
	corners, rotate := CornerAndRotationHandles(l)
	if dist(rotate, Vec2{x, y}) <= tolerance {
		return HandleRotate
	}
	for i, c := range corners {
		if dist(c, Vec2{x, y}) <= tolerance {
			return HandleTopLeft + HandleKind(i)
		}
	}
	return HandleNone
}

// dist returns the Euclidean distance between two points.
func dist(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
