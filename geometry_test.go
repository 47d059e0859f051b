package coverstudio

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testLayer builds a layer around a solid opaque source without going
// through a Document.
func testLayer(w, h int) *Layer {
	l := &Layer{
		Source:  solidSource(w, h),
		Scale:   1,
		Opacity: 1,
	}
	l.initial = l.State()
	return l
}

// --- layerAffine ---

func TestLayerAffineCentersImage(t *testing.T) {
	l := testLayer(100, 60)
	l.Position = Vec2{200, 150}

	m := layerAffine(l)
	// The image center (50, 30) must land exactly on Position.
	x, y := transformPoint(m, 50, 30)
	assertNear(t, "center x", x, 200)
	assertNear(t, "center y", y, 150)
}

func TestLayerAffineScale(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = Vec2{0, 0}
	l.Scale = 2

	m := layerAffine(l)
	// Top-left corner of a 100x100 image at scale 2 sits 100px up-left
	// of the center.
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "tl x", x, -100)
	assertNear(t, "tl y", y, -100)
}

func TestLayerAffineRotation90(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = Vec2{0, 0}
	l.Rotation = 90

	m := layerAffine(l)
	// After a 90 degree turn the image-space x axis points down.
	x, y := transformPoint(m, 100, 50)
	assertNear(t, "rot x", x, 0)
	assertNear(t, "rot y", y, 50)
}

func TestMultiplyAffineAppliesChildFirst(t *testing.T) {
	scale := [6]float64{2, 0, 0, 2, 0, 0}
	translate := [6]float64{1, 0, 0, 1, 10, 20}

	// translate * scale: the point is scaled, then shifted.
	m := multiplyAffine(translate, scale)
	x, y := transformPoint(m, 3, 4)
	assertNear(t, "x", x, 16)
	assertNear(t, "y", y, 28)

	// scale * translate: the shift is scaled too.
	m = multiplyAffine(scale, translate)
	x, y = transformPoint(m, 3, 4)
	assertNear(t, "swapped x", x, 26)
	assertNear(t, "swapped y", y, 48)
}

// --- invertAffine ---

func TestInvertAffineRoundTrip(t *testing.T) {
	l := testLayer(80, 40)
	l.Position = Vec2{123, 45}
	l.Scale = 1.7
	l.Rotation = 33

	m := layerAffine(l)
	inv := invertAffine(m)

	x, y := transformPoint(m, 12, 34)
	bx, by := transformPoint(inv, x, y)
	assertNear(t, "round trip x", bx, 12)
	assertNear(t, "round trip y", by, 34)
}

func TestInvertAffineSingular(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	if got != identityAffine {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

// --- normalizeDegrees ---

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{-181, 179},
		{360, 0},
		{540, 180},
		{725, 5},
		{-725, -5},
	}
	for _, tt := range tests {
		if got := normalizeDegrees(tt.in); math.Abs(got-tt.want) > epsilon {
			t.Errorf("normalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// --- Bounding boxes ---

func TestBoundingBoxOfAxisAligned(t *testing.T) {
	l := testLayer(100, 60)
	l.Position = Vec2{200, 150}

	c := BoundingBoxOf(l)
	assertVec(t, "TL", c[0], Vec2{150, 120})
	assertVec(t, "TR", c[1], Vec2{250, 120})
	assertVec(t, "BR", c[2], Vec2{250, 180})
	assertVec(t, "BL", c[3], Vec2{150, 180})
}

func TestVisualBoundsIgnoresTransparentPadding(t *testing.T) {
	// 100x100 image whose opaque content is the centered 50x50 square.
	l := testLayer(100, 100)
	l.Source = paddedSource(100, 100, 25)
	l.Position = Vec2{100, 100}

	b := VisualAABB(l)
	assertNear(t, "left", b.X, 75)
	assertNear(t, "top", b.Y, 75)
	assertNear(t, "width", b.Width, 50)
	assertNear(t, "height", b.Height, 50)

	// The nominal box still spans the full image.
	n := aabbOf(BoundingBoxOf(l))
	assertNear(t, "nominal width", n.Width, 100)
}

func TestVisualAABBRotated(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = Vec2{0, 0}
	l.Rotation = 45

	b := VisualAABB(l)
	want := 100 * math.Sqrt2
	assertNear(t, "rotated width", b.Width, want)
	assertNear(t, "rotated height", b.Height, want)
}

// --- Hit testing ---

func TestContainsPoint(t *testing.T) {
	l := testLayer(100, 60)
	l.Position = Vec2{200, 150}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 200, 150, true},
		{"corner", 150, 120, true},
		{"outside left", 149, 150, false},
		{"outside below", 200, 181, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsPoint(l, tt.x, tt.y); got != tt.want {
				t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestIsPointOnOpaquePixel(t *testing.T) {
	// Opaque 50x50 center inside a transparent 100x100 image.
	l := testLayer(100, 100)
	l.Source = paddedSource(100, 100, 25)
	l.Position = Vec2{50, 50}

	if !IsPointOnOpaquePixel(l, 50, 50) {
		t.Error("center of opaque content should hit")
	}
	if IsPointOnOpaquePixel(l, 10, 10) {
		t.Error("transparent padding should not hit")
	}
	if IsPointOnOpaquePixel(l, 200, 200) {
		t.Error("point outside the image should not hit")
	}
}

func TestIsPointOnOpaquePixelPatterned(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = Vec2{50, 50}
	l.Fill.Kind = PatternGrid

	if IsPointOnOpaquePixel(l, 50, 50) {
		t.Error("patterned layers are never hit per pixel")
	}
	if !ContainsPoint(l, 50, 50) {
		t.Error("patterned layers hit by their nominal box")
	}
}

// --- Handles ---

func TestOppositeCorner(t *testing.T) {
	tests := []struct {
		h    HandleKind
		want int
	}{
		{HandleTopLeft, 2},
		{HandleTopRight, 3},
		{HandleBottomRight, 0},
		{HandleBottomLeft, 1},
	}
	for _, tt := range tests {
		if got := oppositeCorner(tt.h); got != tt.want {
			t.Errorf("oppositeCorner(%v) = %d, want %d", tt.h, got, tt.want)
		}
	}
}

func TestHandleAt(t *testing.T) {
	l := testLayer(100, 60)
	l.Position = Vec2{200, 150}
	// Corners: TL(150,120) TR(250,120) BR(250,180) BL(150,180),
	// rotation handle at (200,120).

	tests := []struct {
		name string
		x, y float64
		want HandleKind
	}{
		{"top-left exact", 150, 120, HandleTopLeft},
		{"bottom-right near", 253, 178, HandleBottomRight},
		{"rotate", 200, 120, HandleRotate},
		{"rotate wins near tie", 204, 120, HandleRotate},
		{"nothing", 200, 150, HandleNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleAt(l, tt.x, tt.y, HandleSize); got != tt.want {
				t.Errorf("HandleAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHandleAtRotatedLayer(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = Vec2{0, 0}
	l.Rotation = 90

	// With a 90 degree turn the image top-left corner moves to (50, -50).
	if got := HandleAt(l, 50, -50, HandleSize); got != HandleTopLeft {
		t.Errorf("rotated TL handle = %v, want HandleTopLeft", got)
	}
}
