package coverstudio

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Alignment selects an edge or center to align selected layers to.
// All alignment operations work on each layer's visual (opaque-pixel)
// bounds rather than its nominal box, so images with transparent padding
// align by their actual content.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH // horizontal centers to the mean visual center
	AlignCenterV // vertical centers to the mean visual center
)

// Align translates every selected layer so its visual edge (or center)
// meets the selection's extreme edge (or mean center). Requires two or
// more selected layers; returns false otherwise. Commits one history
// entry covering every affected layer.
func (d *Document) Align(a Alignment) bool {
	sel := d.SelectedLayers()
	if len(sel) < 2 {
		return false
	}

	bounds := make([]Rect, len(sel))
	for i, l := range sel {
		bounds[i] = VisualAABB(l)
	}

	switch a {
	case AlignLeft, AlignTop:
		horizontal := a == AlignLeft
		extreme := edge(bounds[0], a)
		for _, b := range bounds[1:] {
			if e := edge(b, a); e < extreme {
				extreme = e
			}
		}
		for i, l := range sel {
			d.nudge(l, extreme-edge(bounds[i], a), horizontal)
		}
	case AlignRight, AlignBottom:
		horizontal := a == AlignRight
		extreme := edge(bounds[0], a)
		for _, b := range bounds[1:] {
			if e := edge(b, a); e > extreme {
				extreme = e
			}
		}
		for i, l := range sel {
			d.nudge(l, extreme-edge(bounds[i], a), horizontal)
		}
	case AlignCenterH, AlignCenterV:
		horizontal := a == AlignCenterH
		centers := make([]float64, len(bounds))
		for i, b := range bounds {
			if horizontal {
				centers[i] = b.CenterX()
			} else {
				centers[i] = b.CenterY()
			}
		}
		mean := stat.Mean(centers, nil)
		for i, l := range sel {
			d.nudge(l, mean-centers[i], horizontal)
		}
	}

	d.Commit()
	return true
}

// edge returns the coordinate of the rect edge an alignment targets.
func edge(b Rect, a Alignment) float64 {
	switch a {
	case AlignLeft:
		return b.X
	case AlignRight:
		return b.X + b.Width
	case AlignTop:
		return b.Y
	default: // AlignBottom
		return b.Y + b.Height
	}
}

// DistributeH spaces the selected layers' visual centers evenly between
// the leftmost and rightmost centers. The two extreme layers do not
// move. Requires three or more selected layers; returns false otherwise.
func (d *Document) DistributeH() bool { return d.distribute(true) }

// DistributeV spaces the selected layers' visual centers evenly between
// the topmost and bottommost centers. The two extreme layers do not
// move. Requires three or more selected layers; returns false otherwise.
func (d *Document) DistributeV() bool { return d.distribute(false) }

func (d *Document) distribute(horizontal bool) bool {
	sel := d.SelectedLayers()
	if len(sel) < 3 {
		return false
	}

	type entry struct {
		layer  *Layer
		center float64
	}
	entries := make([]entry, len(sel))
	for i, l := range sel {
		b := VisualAABB(l)
		if horizontal {
			entries[i] = entry{l, b.CenterX()}
		} else {
			entries[i] = entry{l, b.CenterY()}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].center < entries[j].center
	})

	first := entries[0].center
	last := entries[len(entries)-1].center
	step := (last - first) / float64(len(entries)-1)
	for i, e := range entries[1 : len(entries)-1] {
		want := first + step*float64(i+1)
		d.nudge(e.layer, want-e.center, horizontal)
	}

	d.Commit()
	return true
}

// nudge translates a layer along one axis without committing, flowing
// through the same mutation entry point as interactive drags.
func (d *Document) nudge(l *Layer, delta float64, horizontal bool) {
	if delta == 0 {
		return
	}
	d.applyLayer(l.ID, func(l *Layer) {
		if horizontal {
			l.Position.X += delta
		} else {
			l.Position.Y += delta
		}
	})
}
