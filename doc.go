// Package coverstudio is a layered cover-image compositor built on
// [Ebitengine].
//
// A [Document] holds a stack of up to five image layers over a
// fixed-size canvas. Each layer carries an affine transform (position,
// uniform scale, rotation) plus opacity and an optional repeating
// pattern fill. The package covers the whole editing loop: opaque-pixel
// hit testing, drag/resize/rotate gestures with modifier keys,
// multi-select alignment and distribution, snapshot undo/redo, and
// PNG/JPEG export at 1x-3x resolution.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// an interactive editor for you:
//
//	doc := coverstudio.NewDocument(coverstudio.CanvasPresets[0])
//	doc.AddFiles("photo.png", "logo.png")
//	coverstudio.Run(doc, coverstudio.RunConfig{
//		Title: "Cover Studio", Width: 1280, Height: 800,
//	})
//
// For headless use, skip the studio entirely. [Document] and
// [Controller] have no window dependency:
//
//	doc := coverstudio.NewDocument(coverstudio.PresetByName("cover"))
//	doc.AddFiles("photo.png")
//	doc.UpdateLayer(doc.Layers()[0].ID, func(l *coverstudio.Layer) {
//		l.Rotation = 15
//	})
//	img, _ := coverstudio.RenderImage(doc, 2)
//
// # Editing model
//
// All mutation goes through [Document]: adding and removing layers,
// selection, transform edits via [Document.UpdateLayer], alignment, and
// pattern fills. Every committed change pushes a history snapshot, so
// [Document.Undo] and [Document.Redo] restore full layer state
// including pattern scatter placements.
//
// [Controller] translates canvas-space pointer events into those
// document operations. It owns the gesture state machine: click to
// select, double-step into transform mode, drag to move, corner handles
// to resize around the opposite corner, and the top handle to rotate.
//
// [Ebitengine]: https://ebitengine.org
package coverstudio
