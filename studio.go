package coverstudio

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// noteFrames is how long a notification stays on screen.
const noteFrames = 180

// RunConfig configures the editor window.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ExportDir receives quick exports (Ctrl+S). Defaults to ".".
	ExportDir string
	// ScriptPath, if set, names a JSON interaction script to run on
	// startup.
	ScriptPath string
}

// Studio is the interactive editor shell: an ebiten.Game that owns a
// Document, a Viewport, and the pointer Controller, and draws the canvas
// with selection outlines and transform handles on top.
//
// Compose it yourself for full control, or use [Run]:
//
//	doc := coverstudio.NewDocument(coverstudio.PresetByName("cover"))
//	doc.AddFiles("art.png")
//	coverstudio.Run(doc, coverstudio.RunConfig{Title: "cover studio"})
type Studio struct {
	doc  *Document
	ctrl *Controller
	view *Viewport

	canvas  *ebiten.Image
	checker *ebiten.Image

	winW, winH  int
	prevPressed bool
	panning     bool
	panX, panY  float64
	fitted      bool

	injectQueue []syntheticPointerEvent
	injectDown  bool
	script      *ScriptRunner

	exportDir string
	lastNote  Note
	noteAge   int
}

// NewStudio creates the editor shell for a document. The studio installs
// itself as the document's notifier so notes show on screen; call
// Document.SetNotifier afterwards to divert them elsewhere.
func NewStudio(doc *Document) *Studio {
	s := &Studio{
		doc:       doc,
		ctrl:      NewController(doc),
		view:      NewViewport(1280, 800),
		exportDir: ".",
		noteAge:   noteFrames,
	}
	doc.SetNotifier(s)
	return s
}

// Document returns the studio's document.
func (s *Studio) Document() *Document { return s.doc }

// Viewport returns the studio's viewport.
func (s *Studio) Viewport() *Viewport { return s.view }

// Controller returns the studio's pointer controller.
func (s *Studio) Controller() *Controller { return s.ctrl }

// SetExportDir sets the directory quick exports are written to.
func (s *Studio) SetExportDir(dir string) { s.exportDir = dir }

// SetScriptRunner attaches a scripted interaction runner, stepped once
// per frame before input processing.
func (s *Studio) SetScriptRunner(r *ScriptRunner) { s.script = r }

// Notify displays a document notification in the editor.
func (s *Studio) Notify(n Note) {
	s.lastNote = n
	s.noteAge = 0
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// Update implements ebiten.Game.
func (s *Studio) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.view.update(dt)

	if !s.fitted && s.winW > 0 {
		w, h := s.doc.Size()
		s.view.Fit(w, h, 40)
		s.fitted = true
	}

	// Keep the on-screen grab radius and click threshold constant
	// regardless of zoom.
	s.ctrl.HandleTolerance = HandleSize / s.view.Zoom
	s.ctrl.DeadZone = defaultDragDeadZone / s.view.Zoom

	mods := readModifiers()
	s.handleKeys(mods)

	if s.script != nil {
		s.script.step(s)
	}
	if s.processInjectedInput(mods) {
		return nil
	}
	s.processMouse(mods)
	s.noteAge++
	return nil
}

// handleKeys processes keyboard shortcuts.
func (s *Studio) handleKeys(mods KeyModifiers) {
	switch {
	case mods&ModCtrl != 0 && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if mods&ModShift != 0 {
			s.doc.Redo()
		} else {
			s.doc.Undo()
		}
	case mods&ModCtrl != 0 && inpututil.IsKeyJustPressed(ebiten.KeyY):
		s.doc.Redo()
	case mods&ModCtrl != 0 && inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.quickExport()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		for _, id := range append([]uuid.UUID(nil), s.doc.Selection()...) {
			s.doc.RemoveLayer(id)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.doc.ClearSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		w, h := s.doc.Size()
		s.view.Fit(w, h, 40)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if l := s.doc.ActiveLayer(); l != nil {
			s.doc.ResetLayer(l.ID)
		}
	}
}

// mouseButtonPressed reports whether the given button is held down.
func mouseButtonPressed(b MouseButton) bool {
	switch b {
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	default:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
}

// processMouse feeds real mouse input to the pointer controller.
// Releasing outside the window finalizes the drag like a pointer-up.
// The right and middle buttons pan the viewport instead of touching the
// document.
func (s *Studio) processMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	cx, cy := s.view.ScreenToCanvas(sx, sy)

	if s.processPan(sx, sy) {
		return
	}
	pressed := mouseButtonPressed(MouseButtonLeft)

	outside := sx < 0 || sy < 0 || sx > float64(s.winW) || sy > float64(s.winH)
	if s.prevPressed && outside {
		s.ctrl.PointerLeave()
		s.prevPressed = false
		return
	}

	switch {
	case pressed && !s.prevPressed:
		s.ctrl.PointerDown(cx, cy, mods)
	case pressed && s.prevPressed:
		s.ctrl.PointerMove(cx, cy, mods)
	case !pressed && s.prevPressed:
		s.ctrl.PointerUp(cx, cy, mods)
	}
	s.prevPressed = pressed
}

// processPan drags the viewport with the right or middle button. Returns
// true while a pan is in progress so gesture input is suppressed.
func (s *Studio) processPan(sx, sy float64) bool {
	down := mouseButtonPressed(MouseButtonRight) || mouseButtonPressed(MouseButtonMiddle)
	if down && s.panning {
		// Screen delta converted to canvas units; the canvas follows
		// the cursor, so the center moves the opposite way.
		s.view.Pan((s.panX-sx)/s.view.Zoom, (s.panY-sy)/s.view.Zoom)
	}
	s.panX, s.panY = sx, sy
	// Never start a pan while a gesture drag is active.
	s.panning = down && (s.panning || !s.prevPressed)
	return s.panning
}

// quickExport writes a timestamped PNG of the document at 1x.
func (s *Studio) quickExport() {
	name := fmt.Sprintf("cover_%s.png", time.Now().Format("20060102_150405"))
	path := s.exportDir + string(os.PathSeparator) + name
	if err := ExportFile(s.doc, path, 1, FormatPNG); err != nil {
		fmt.Fprintf(os.Stderr, "[coverstudio] export: %v\n", err)
		s.Notify(Note{SeverityError, "export failed"})
		return
	}
	s.Notify(Note{SeverityInfo, "exported " + name})
}

// Draw implements ebiten.Game.
func (s *Studio) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{40, 40, 44, 255})

	w, h := s.doc.Size()
	if s.canvas == nil || s.canvas.Bounds().Dx() != w || s.canvas.Bounds().Dy() != h {
		if s.canvas != nil {
			s.canvas.Deallocate()
		}
		s.canvas = ebiten.NewImage(w, h)
	}

	s.drawBackdrop(screen, w, h)
	Paint(s.canvas, s.doc)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	m := s.view.computeMatrix()
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	screen.DrawImage(s.canvas, op)

	s.drawOverlay(screen)
	s.drawNote(screen)
}

// drawBackdrop draws a checkerboard behind the canvas rect so
// transparent backgrounds read as transparency.
func (s *Studio) drawBackdrop(screen *ebiten.Image, w, h int) {
	if !s.doc.Background.Transparent {
		return
	}
	if s.checker == nil {
		s.checker = ebiten.NewImage(2, 2)
		s.checker.Set(0, 0, color.RGBA{120, 120, 120, 255})
		s.checker.Set(1, 1, color.RGBA{120, 120, 120, 255})
		s.checker.Set(1, 0, color.RGBA{90, 90, 90, 255})
		s.checker.Set(0, 1, color.RGBA{90, 90, 90, 255})
	}
	x0, y0 := s.view.CanvasToScreen(0, 0)
	x1, y1 := s.view.CanvasToScreen(float64(w), float64(h))
	area := screen.SubImage(image.Rect(int(x0), int(y0), int(x1), int(y1))).(*ebiten.Image)
	// 8px squares, tiled over the canvas rect.
	const tile = 16.0
	for y := y0; y < y1; y += tile {
		for x := x0; x < x1; x += tile {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(tile/2, tile/2)
			op.GeoM.Translate(x, y)
			op.Filter = ebiten.FilterNearest
			area.DrawImage(s.checker, op)
		}
	}
}

// selection and handle colors
var (
	selectionColor = color.RGBA{64, 156, 255, 255}
	handleFill     = color.RGBA{255, 255, 255, 255}
)

// drawOverlay draws selection outlines and, in transform mode, the
// corner and rotation handles of the active layer.
func (s *Studio) drawOverlay(screen *ebiten.Image) {
	for _, l := range s.doc.SelectedLayers() {
		corners := BoundingBoxOf(l)
		var pts [4]Vec2
		for i, c := range corners {
			x, y := s.view.CanvasToScreen(c.X, c.Y)
			pts[i] = Vec2{x, y}
		}
		for i := range pts {
			j := (i + 1) % 4
			vector.StrokeLine(screen,
				float32(pts[i].X), float32(pts[i].Y),
				float32(pts[j].X), float32(pts[j].Y),
				1.5, selectionColor, true)
		}
	}

	if !s.doc.TransformMode() {
		return
	}
	l := s.doc.ActiveLayer()
	if l == nil {
		return
	}
	corners, rotate := CornerAndRotationHandles(l)
	for _, c := range corners {
		x, y := s.view.CanvasToScreen(c.X, c.Y)
		half := float32(HandleSize / 2)
		vector.DrawFilledRect(screen,
			float32(x)-half, float32(y)-half, 2*half, 2*half, handleFill, true)
		vector.StrokeRect(screen,
			float32(x)-half, float32(y)-half, 2*half, 2*half, 1, selectionColor, true)
	}
	rx, ry := s.view.CanvasToScreen(rotate.X, rotate.Y)
	vector.DrawFilledCircle(screen, float32(rx), float32(ry), float32(HandleSize/2), handleFill, true)
	vector.StrokeCircle(screen, float32(rx), float32(ry), float32(HandleSize/2), 1, selectionColor, true)
}

// drawNote shows the most recent notification in the corner.
func (s *Studio) drawNote(screen *ebiten.Image) {
	if s.noteAge >= noteFrames {
		return
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("[%s] %s", s.lastNote.Severity, s.lastNote.Text), 8, s.winH-24)
}

// Layout implements ebiten.Game.
func (s *Studio) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.winW, s.winH = outsideWidth, outsideHeight
	s.view.SetWindowSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens an editor window for the document and blocks until it is
// closed.
func Run(doc *Document, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = "cover studio"
	}
	s := NewStudio(doc)
	if cfg.ExportDir != "" {
		s.exportDir = cfg.ExportDir
	}
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := LoadScript(data)
		if err != nil {
			return err
		}
		s.script = script
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(s)
}
