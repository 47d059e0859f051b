package coverstudio

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Document is the single owner of a cover's editable state: the ordered
// layer list, the selection, transform mode, and undo history. There is
// no package-level state; construct a Document per open cover and pass
// it to every component that needs it.
//
// Layer order defines paint order: index 0 is painted first
// (bottom-most), the last element is the topmost layer.
//
// The document is single-threaded by design. All methods must be called
// from the same goroutine (the UI event loop).
type Document struct {
	width  int
	height int

	// Background is painted below all layers.
	Background Background

	// MaxLayers is the hard ceiling on the layer count.
	MaxLayers int

	layers        []*Layer
	selection     []uuid.UUID // insertion-ordered id set
	transformMode bool

	hist     history
	notifier Notifier
	rng      *rand.Rand
}

// NewDocument creates an empty document with the given canvas preset.
func NewDocument(preset CanvasPreset) *Document {
	d := &Document{
		width:      preset.Width,
		height:     preset.Height,
		Background: WhiteBackground,
		MaxLayers:  DefaultMaxLayers,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	// Baseline entry so the first committed mutation can be undone back
	// to the pristine document.
	d.hist.push(snapshotLayers(d.layers))
	return d
}

// SetNotifier sets the sink for user-facing notifications.
func (d *Document) SetNotifier(n Notifier) { d.notifier = n }

// SetScatterSeed reseeds the scatter RNG. Tests use this to make
// random/spread caches deterministic.
func (d *Document) SetScatterSeed(seed int64) {
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Document) notify(sev Severity, format string, args ...any) {
	if d.notifier != nil {
		d.notifier.Notify(Note{Severity: sev, Text: fmt.Sprintf(format, args...)})
	}
}

// Size returns the canvas logical pixel dimensions.
func (d *Document) Size() (w, h int) { return d.width, d.height }

// Center returns the canvas midpoint.
func (d *Document) Center() Vec2 {
	return Vec2{float64(d.width) / 2, float64(d.height) / 2}
}

// Layers returns the ordered layer list, bottom-most first.
// The returned slice MUST NOT be mutated.
func (d *Document) Layers() []*Layer { return d.layers }

// LayerByID returns the layer with the given id, or nil.
func (d *Document) LayerByID(id uuid.UUID) *Layer {
	l, _ := d.layerAt(id)
	return l
}

func (d *Document) layerAt(id uuid.UUID) (*Layer, int) {
	for i, l := range d.layers {
		if l.ID == id {
			return l, i
		}
	}
	return nil, -1
}

// --- Selection ---

// Selection returns the selected layer ids in insertion order.
// The returned slice MUST NOT be mutated.
func (d *Document) Selection() []uuid.UUID { return d.selection }

// IsSelected reports whether the layer id is in the selection.
func (d *Document) IsSelected(id uuid.UUID) bool {
	for _, s := range d.selection {
		if s == id {
			return true
		}
	}
	return false
}

// SelectedLayers returns the selected layers in paint order.
func (d *Document) SelectedLayers() []*Layer {
	var out []*Layer
	for _, l := range d.layers {
		if d.IsSelected(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

// ActiveLayer returns the single selected layer, or nil when the
// selection is empty or holds two or more layers.
func (d *Document) ActiveLayer() *Layer {
	if len(d.selection) != 1 {
		return nil
	}
	return d.LayerByID(d.selection[0])
}

// SelectOnly replaces the selection with the given layer.
// Unknown ids clear the selection.
func (d *Document) SelectOnly(id uuid.UUID) {
	if l, _ := d.layerAt(id); l == nil {
		d.ClearSelection()
		return
	}
	d.selection = append(d.selection[:0], id)
	d.syncTransformMode()
}

// ToggleSelect adds the layer to the selection, or removes it if already
// selected. Unknown ids are ignored.
func (d *Document) ToggleSelect(id uuid.UUID) {
	if l, _ := d.layerAt(id); l == nil {
		return
	}
	for i, s := range d.selection {
		if s == id {
			d.selection = append(d.selection[:i], d.selection[i+1:]...)
			d.syncTransformMode()
			return
		}
	}
	d.selection = append(d.selection, id)
	d.syncTransformMode()
}

// ClearSelection empties the selection and exits transform mode.
func (d *Document) ClearSelection() {
	d.selection = d.selection[:0]
	d.transformMode = false
}

// --- Transform mode ---

// TransformMode reports whether the active layer shows resize/rotate
// handles. Only meaningful when exactly one layer is selected.
func (d *Document) TransformMode() bool { return d.transformMode }

// EnterTransformMode turns transform mode on. Refused (returning false)
// unless exactly one layer is selected and its pattern is none: patterned
// layers are not handle-editable.
func (d *Document) EnterTransformMode() bool {
	l := d.ActiveLayer()
	if l == nil || l.Fill.Kind != PatternNone {
		return false
	}
	d.transformMode = true
	return true
}

// ExitTransformMode turns transform mode off.
func (d *Document) ExitTransformMode() { d.transformMode = false }

// syncTransformMode re-checks the transform mode invariant after any
// selection or pattern change: forced off unless exactly one unpatterned
// layer is selected.
func (d *Document) syncTransformMode() {
	if !d.transformMode {
		return
	}
	l := d.ActiveLayer()
	if l == nil || l.Fill.Kind != PatternNone {
		d.transformMode = false
	}
}

// --- History ---

// Commit pushes one history entry for the current state. Called once per
// completed gesture or discrete control change, never per in-progress
// drag frame.
func (d *Document) Commit() {
	d.hist.push(snapshotLayers(d.layers))
}

// Undo restores the previous history entry. Returns false (and changes
// nothing) at the start of history.
func (d *Document) Undo() bool {
	s, ok := d.hist.undo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// Redo restores the next history entry. Returns false (and changes
// nothing) at the end of history.
func (d *Document) Redo() bool {
	s, ok := d.hist.redo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

func (d *Document) restore(s snapshot) {
	d.layers = restoreLayers(s)
	// Prune selection to surviving layers.
	kept := d.selection[:0]
	for _, id := range d.selection {
		if l, _ := d.layerAt(id); l != nil {
			kept = append(kept, id)
		}
	}
	d.selection = kept
	d.syncTransformMode()
}

// --- Layer lifecycle ---

// AddSources appends one layer per decoded source, up to the remaining
// layer capacity, and returns how many were accepted. Overflow is
// reported through the notifier with the exact rejected count. Newly
// added layers become the selection; transform mode is entered when a
// single layer was added.
func (d *Document) AddSources(srcs ...*Source) int {
	capacity := d.MaxLayers - len(d.layers)
	if capacity < 0 {
		capacity = 0
	}
	accepted := len(srcs)
	if accepted > capacity {
		accepted = capacity
	}
	if rejected := len(srcs) - accepted; rejected > 0 {
		d.notify(SeverityWarning, "layer limit reached: %d image(s) skipped", rejected)
	}
	if accepted == 0 {
		return 0
	}

	d.selection = d.selection[:0]
	for _, src := range srcs[:accepted] {
		l := newLayer(src, d.width, d.height)
		d.layers = append(d.layers, l)
		d.selection = append(d.selection, l.ID)
	}
	d.transformMode = accepted == 1
	d.notify(SeverityInfo, "%d layer(s) added", accepted)
	d.Commit()
	return accepted
}

// AddFiles decodes and adds the image files at the given paths. Files
// that fail to decode are skipped (the rest of the batch continues) and
// the failure count is reported. Returns how many layers were added.
func (d *Document) AddFiles(paths ...string) int {
	var srcs []*Source
	failed := 0
	for _, p := range paths {
		src, err := LoadSource(p)
		if err != nil {
			failed++
			continue
		}
		srcs = append(srcs, src)
	}
	if failed > 0 {
		d.notify(SeverityError, "%d file(s) could not be decoded", failed)
	}
	if len(srcs) == 0 {
		return 0
	}
	return d.AddSources(srcs...)
}

// RemoveLayer deletes the layer. If it was selected, the selection moves
// to the topmost remaining layer (or empties). Unknown ids are a silent
// no-op.
func (d *Document) RemoveLayer(id uuid.UUID) {
	l, i := d.layerAt(id)
	if l == nil {
		return
	}
	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	if d.IsSelected(id) {
		d.selection = d.selection[:0]
		if n := len(d.layers); n > 0 {
			d.selection = append(d.selection, d.layers[n-1].ID)
		}
	}
	d.syncTransformMode()
	d.Commit()
}

// Clear removes every layer and empties the selection.
func (d *Document) Clear() {
	if len(d.layers) == 0 {
		return
	}
	d.layers = nil
	d.ClearSelection()
	d.Commit()
}

// Reorder rearranges layers into the order given by ids (bottom-most
// first). Ids not in the document are ignored; layers missing from ids
// keep their relative order above the reordered ones.
func (d *Document) Reorder(ids []uuid.UUID) {
	ordered := make([]*Layer, 0, len(d.layers))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if l, _ := d.layerAt(id); l != nil && !seen[id] {
			ordered = append(ordered, l)
			seen[id] = true
		}
	}
	for _, l := range d.layers {
		if !seen[l.ID] {
			ordered = append(ordered, l)
		}
	}
	changed := false
	for i := range ordered {
		if ordered[i] != d.layers[i] {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	d.layers = ordered
	d.Commit()
}

// --- Mutation ---

// patternKey captures every field whose change invalidates a layer's
// scatter cache. The backing image is immutable per layer; canvas size
// changes are handled by SetCanvasSize.
type patternKey struct {
	kind     PatternKind
	spacing  float64
	scale    float64
	rotation float64
}

func keyOf(l *Layer) patternKey {
	return patternKey{l.Fill.Kind, l.Fill.Spacing, l.Scale, l.Rotation}
}

// applyLayer runs one uncommitted mutation: clamping, the
// pattern/transform-mode invariant, and scatter cache maintenance all
// happen here, in the single mutation entry point. Unknown ids are a
// silent no-op: by the time a mutation is dispatched the layer may have
// been removed by another UI action in the same tick.
func (d *Document) applyLayer(id uuid.UUID, fn func(*Layer)) {
	l, _ := d.layerAt(id)
	if l == nil {
		return
	}
	before := keyOf(l)
	fn(l)
	l.clamp()

	// Setting a pattern on the transform-active layer force-exits
	// transform mode as part of the same mutation.
	if l.Fill.Kind != PatternNone && d.transformMode && d.ActiveLayer() == l {
		d.transformMode = false
	}

	if after := keyOf(l); l.Fill.Kind.Scattered() {
		if before != after || l.Fill.scatter == nil {
			l.Fill.scatter = computeScatter(d.rng, l, d.width, d.height)
		}
	} else {
		l.Fill.scatter = nil
	}
}

// UpdateLayer applies one committed mutation to the layer. Scale and
// opacity are clamped, rotation normalized, and derived state kept
// consistent; see applyLayer. One history entry is pushed for the whole
// logical action.
func (d *Document) UpdateLayer(id uuid.UUID, fn func(*Layer)) {
	if l, _ := d.layerAt(id); l == nil {
		return
	}
	d.applyLayer(id, fn)
	d.Commit()
}

// UpdateLayers applies the mutation to every given layer and commits a
// single history entry covering all of them.
func (d *Document) UpdateLayers(ids []uuid.UUID, fn func(*Layer)) {
	touched := false
	for _, id := range ids {
		if l, _ := d.layerAt(id); l != nil {
			d.applyLayer(id, fn)
			touched = true
		}
	}
	if touched {
		d.Commit()
	}
}

// ResetLayer restores scale, rotation, opacity, and position from the
// snapshot captured at layer creation.
func (d *Document) ResetLayer(id uuid.UUID) {
	d.UpdateLayer(id, func(l *Layer) {
		l.applyState(l.initial)
	})
}

// SetCanvasSize changes the canvas logical dimensions, re-centers every
// layer, and regenerates every scatter cache.
func (d *Document) SetCanvasSize(w, h int) {
	if w < 1 || h < 1 || (w == d.width && h == d.height) {
		return
	}
	d.width = w
	d.height = h
	center := d.Center()
	for _, l := range d.layers {
		l.Position = center
		if l.Fill.Kind.Scattered() {
			l.Fill.scatter = computeScatter(d.rng, l, d.width, d.height)
		}
	}
	if len(d.layers) > 0 {
		d.Commit()
	}
}

// ApplyPreset switches the canvas to a named preset size.
func (d *Document) ApplyPreset(p CanvasPreset) {
	d.SetCanvasSize(p.Width, p.Height)
}
