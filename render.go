package coverstudio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Paint clears dst, fills the document background (skipped when
// transparent), then paints every layer bottom to top. dst is expected
// to match the document's logical canvas size; use paintScaled for
// export surfaces at a resolution multiplier.
//
// The same routine backs the live preview and exports, so what is
// exported is exactly what was on screen.
func Paint(dst *ebiten.Image, doc *Document) {
	paintScaled(dst, doc, 1)
}

// paintScaled paints the document with an outer resolution multiplier.
func paintScaled(dst *ebiten.Image, doc *Document, mult float64) {
	dst.Clear()
	if !doc.Background.Transparent {
		dst.Fill(doc.Background.Color)
	}
	for _, l := range doc.Layers() {
		paintLayer(dst, doc, l, mult)
	}
}

// paintLayer paints one layer according to its fill kind.
func paintLayer(dst *ebiten.Image, doc *Document, l *Layer, mult float64) {
	switch {
	case l.Fill.Kind == PatternNone:
		drawInstance(dst, l, l.Position, 0, 1, mult)

	case l.Fill.Kind.Scattered():
		// Scatter offsets were generated for a layer at the canvas
		// center; shifting by the layer's displacement moves the whole
		// field as a unit.
		delta := l.Position.Sub(doc.Center())
		for _, e := range l.Fill.Scatter() {
			drawInstance(dst, l, e.Offset.Add(delta), e.Rotation, e.Scale, mult)
		}

	default:
		paintTiles(dst, doc, l, mult)
	}
}

// paintTiles steps a grid of copies across the canvas plus one tile-step
// margin on all sides, so rotated and offset tiles still cover the
// corners. The grid is phase-anchored on the layer position.
func paintTiles(dst *ebiten.Image, doc *Document, l *Layer, mult float64) {
	w, h := doc.Size()
	stepX, stepY := tileStep(l)

	rowMin := int(math.Floor((-stepY - l.Position.Y) / stepY))
	rowMax := int(math.Ceil((float64(h) + stepY - l.Position.Y) / stepY))
	colMin := int(math.Floor((-stepX - l.Position.X) / stepX))
	colMax := int(math.Ceil((float64(w) + stepX - l.Position.X) / stepX))

	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			dx, extraRot := tileAdjust(l.Fill.Kind, col, row, stepX)
			center := Vec2{
				l.Position.X + float64(col)*stepX + dx,
				l.Position.Y + float64(row)*stepY,
			}
			drawInstance(dst, l, center, extraRot, 1, mult)
		}
	}
}

// drawInstance draws one copy of the layer image centered at the given
// canvas point, with per-instance rotation and scale applied on top of
// the layer's base transform and the layer opacity as global alpha.
func drawInstance(dst *ebiten.Image, l *Layer, center Vec2, extraRotation, extraScale, mult float64) {
	w, h := l.Source.Size()
	s := l.Scale * extraScale

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Rotate((l.Rotation + extraRotation) * math.Pi / 180)
	op.GeoM.Translate(center.X, center.Y)
	op.GeoM.Scale(mult, mult)
	op.ColorScale.ScaleAlpha(float32(l.Opacity))
	dst.DrawImage(l.Source.Texture(), op)
}
