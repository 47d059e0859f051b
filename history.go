package coverstudio

import "github.com/google/uuid"

// layerSnap is the per-layer portion of a history snapshot. Transform
// fields are copied by value; the Source and the scatter slice are shared
// by reference since raster data and derived caches are immutable and not
// meant to round-trip through history.
type layerSnap struct {
	id       uuid.UUID
	source   *Source
	state    LayerState
	initial  LayerState
	fillKind PatternKind
	spacing  float64
	scatter  []ScatterEntry
}

// snapshot is one committed history entry: the full ordered layer list.
type snapshot struct {
	layers []layerSnap
}

// history is a bounded append-only sequence of snapshots with a current
// index. The oldest entries are evicted first once the cap is reached,
// silently dropping undo depth rather than failing.
type history struct {
	entries []snapshot
	index   int
}

// push commits a snapshot, truncating any redo future beyond the current
// index first.
func (h *history) push(s snapshot) {
	if len(h.entries) == 0 {
		h.entries = append(h.entries, s)
		h.index = 0
		return
	}
	h.entries = append(h.entries[:h.index+1], s)
	if len(h.entries) > historyCap {
		evict := len(h.entries) - historyCap
		h.entries = append(h.entries[:0], h.entries[evict:]...)
	}
	h.index = len(h.entries) - 1
}

// undo moves the index back one entry. ok is false at the start of
// history.
func (h *history) undo() (snapshot, bool) {
	if h.index <= 0 {
		return snapshot{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// redo moves the index forward one entry. ok is false at the end of
// history.
func (h *history) redo() (snapshot, bool) {
	if h.index >= len(h.entries)-1 {
		return snapshot{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// snapshotLayers captures the current layer list.
func snapshotLayers(layers []*Layer) snapshot {
	s := snapshot{layers: make([]layerSnap, len(layers))}
	for i, l := range layers {
		s.layers[i] = layerSnap{
			id:       l.ID,
			source:   l.Source,
			state:    l.State(),
			initial:  l.initial,
			fillKind: l.Fill.Kind,
			spacing:  l.Fill.Spacing,
			scatter:  l.Fill.scatter,
		}
	}
	return s
}

// restoreLayers rebuilds a live layer list from a snapshot. Sources are
// reattached by the shared reference held in the snapshot.
func restoreLayers(s snapshot) []*Layer {
	layers := make([]*Layer, len(s.layers))
	for i, ls := range s.layers {
		l := &Layer{
			ID:     ls.id,
			Source: ls.source,
			Fill: PatternFill{
				Kind:    ls.fillKind,
				Spacing: ls.spacing,
				scatter: ls.scatter,
			},
			initial: ls.initial,
		}
		l.applyState(ls.state)
		layers[i] = l
	}
	return layers
}
